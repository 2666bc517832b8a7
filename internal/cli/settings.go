package cli

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read into Settings,
// e.g. ACTATEK_FORMAT=json.
const EnvPrefix = "ACTATEK"

// Settings are the merged global options. Precedence, highest first:
// explicit flags, ACTATEK_* environment variables, the settings file,
// flag defaults.
type Settings struct {
	Format  string `mapstructure:"format" validate:"required,oneof=text json yaml"`
	Verbose bool   `mapstructure:"verbose"`
	Catalog string `mapstructure:"catalog" validate:"omitempty,endswith=.cue"`
	DB      string `mapstructure:"db"`
}

var validate = validator.New()

// LoadSettings merges cmd's flags with the environment and, when
// configPath is set, a settings file.
func LoadSettings(cmd *cobra.Command, configPath string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("catalog", "")
	v.SetDefault("db", "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	if cmd != nil {
		for _, name := range []string{"format", "verbose", "catalog", "db"} {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", strings.ToLower(fe.Field()), fe.Tag(), fe.Param(), fe.Value()))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Apply copies the merged values into opts.
func (s *Settings) Apply(opts *RootOptions) {
	opts.Format = s.Format
	opts.Verbose = s.Verbose
	opts.CatalogPath = s.Catalog
	opts.DBPath = s.DB
}
