package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts are written to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Printf writes formatted text to the output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// ReadLine writes prompt and returns the next input line without
// surrounding whitespace. A final line without a newline is returned
// normally; io.EOF is returned only when no input is left.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	input, err := p.in.ReadString('\n')
	if err == io.EOF && input != "" {
		fmt.Fprintln(p.out)
		return strings.TrimSpace(input), nil
	}
	if err != nil {
		if err == io.EOF {
			fmt.Fprintln(p.out)
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// Choice displays a numbered menu and returns the selected index (0-based).
// An empty answer selects defaultIndex.
func (p *Prompter) Choice(question string, options []string, defaultIndex int) (int, error) {
	fmt.Fprintln(p.out, question)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
	}

	for {
		input, err := p.ReadLine(fmt.Sprintf("Selection [%d]: ", defaultIndex+1))
		if err != nil {
			return 0, err
		}

		if input == "" {
			return defaultIndex, nil
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(options) {
			fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", len(options))
			continue
		}

		return num - 1, nil
	}
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		input, err := p.ReadLine(fmt.Sprintf("%s [%s]: ", question, hint))
		if err != nil {
			return false, err
		}

		switch strings.ToLower(input) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n")
	}
}
