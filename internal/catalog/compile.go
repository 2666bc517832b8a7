package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

//go:embed catalog.cue
var defaultCUE string

// CompileError reports a catalog authoring problem, with the CUE source
// position when one is known.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default compiles the embedded ACTAtek catalog.
func Default() (*Catalog, error) {
	return Compile("catalog.cue", defaultCUE)
}

// MustDefault is like Default but panics on error.
// The embedded catalog is covered by tests, so this only fails on a broken build.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads and compiles a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Compile(path, string(data))
}

// Compile parses CUE source into a Catalog. The source is unified with the
// option schema before extraction, so unknown fields and wrongly typed values
// are rejected by CUE itself. Structural rules CUE cannot express (unique
// ids, sentinel placement) are checked afterwards.
func Compile(filename, src string) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	data := ctx.CompileString(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.Unify(data)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	groups := make(map[Group][]Option, len(Groups))
	positions := make(map[string]token.Pos)
	for _, g := range Groups {
		list := v.LookupPath(cue.ParsePath(string(g)))
		if !list.Exists() {
			return nil, &CompileError{
				Field:   string(g),
				Message: "group is required",
				Pos:     v.Pos(),
			}
		}
		opts, err := parseGroup(g, list, positions)
		if err != nil {
			return nil, err
		}
		groups[g] = opts
	}

	return build(groups, positions)
}

// parseGroup extracts the options of one group in declaration order.
func parseGroup(g Group, list cue.Value, positions map[string]token.Pos) ([]Option, error) {
	iter, err := list.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var opts []Option
	for i := 0; iter.Next(); i++ {
		elem := iter.Value()
		field := fmt.Sprintf("%s[%d]", g, i)
		positions[field] = elem.Pos()

		var opt Option
		if opt.ID, err = requiredString(elem, field, "id"); err != nil {
			return nil, err
		}
		if opt.Label, err = requiredString(elem, field, "label"); err != nil {
			return nil, err
		}
		if opt.Code, err = requiredString(elem, field, "code"); err != nil {
			return nil, err
		}
		if opt.Description, err = optionalString(elem, "description"); err != nil {
			return nil, err
		}
		category, err := optionalString(elem, "category")
		if err != nil {
			return nil, err
		}
		opt.Category = Category(category)

		sentinel := elem.LookupPath(cue.ParsePath("sentinel"))
		if sentinel.Exists() && sentinel.IsConcrete() {
			if opt.Sentinel, err = sentinel.Bool(); err != nil {
				return nil, formatCUEError(err)
			}
		}

		opts = append(opts, opt)
	}
	return opts, nil
}

func requiredString(v cue.Value, field, name string) (string, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return "", &CompileError{
			Field:   field + "." + name,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, name string) (string, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() || !f.IsConcrete() {
		return "", nil
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
