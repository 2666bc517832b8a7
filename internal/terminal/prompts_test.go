package terminal

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestReadLine(t *testing.T) {
	p, out := newPrompter("  hello \nlast")

	line, err := p.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = p.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = p.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.True(t, strings.HasPrefix(out.String(), "> > "))
}

func TestChoice(t *testing.T) {
	p, out := newPrompter("7\nabc\n2\n")

	idx, err := p.Choice("Pick one", []string{"alpha", "beta", "gamma"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	assert.Contains(t, out.String(), "  1. alpha\n  2. beta\n  3. gamma\n")
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a number between 1 and 3"))
}

func TestChoice_Default(t *testing.T) {
	p, out := newPrompter("\n")

	idx, err := p.Choice("Pick one", []string{"alpha", "beta"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "Selection [2]: ")
}

func TestChoice_EOF(t *testing.T) {
	p, _ := newPrompter("")

	_, err := p.Choice("Pick one", []string{"alpha"}, 0)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\ny\n", false, true},
	}
	for _, tt := range tests {
		p, _ := newPrompter(tt.input)
		got, err := p.Confirm("Continue?", tt.def)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestIsTerminal_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	assert.False(t, IsTerminal(r))
	assert.Equal(t, 80, Width(w, 80))
}
