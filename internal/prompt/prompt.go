// Package prompt implements the interactive questions asked by init:
// numbered multi-select menus for modules and yes/no confirmations. Input
// is read line by line so the prompts work with piped stdin.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/tienedev/shipkit-cli/internal/registry"
)

// ErrAborted is returned when input ends before an answer is given.
var ErrAborted = errors.New("operation cancelled")

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// SelectModules presents mods as a numbered menu and returns the chosen
// names in menu order. An empty answer keeps the recommended modules,
// "none" selects nothing, otherwise the answer is a comma or space
// separated list of numbers.
func (p *Prompter) SelectModules(mods []registry.Module, message string) ([]string, error) {
	if len(mods) == 0 {
		return nil, nil
	}

	fmt.Fprintf(p.out, "%s\n", message)
	for i, m := range mods {
		marker := " "
		if m.Recommended {
			marker = "*"
		}
		fmt.Fprintf(p.out, "  %s %d) %s - %s\n", marker, i+1, m.Name, m.Description)
	}
	fmt.Fprintf(p.out, "Enter numbers [1-%d], \"none\", or press Enter for recommended (*): ", len(mods))

	line, err := p.readLine()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(line) {
	case "":
		return registry.Names(registry.Recommended(mods)), nil
	case "none":
		return []string{}, nil
	}

	indexes, err := parseSelection(line, len(mods))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(indexes))
	for i, idx := range indexes {
		names[i] = mods[idx].Name
	}
	return names, nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(message string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s ", message, hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q: expected y or n", line)
	}
}

// readLine returns the next trimmed line. A final line without a newline
// is accepted; end of input with nothing read is ErrAborted.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// parseSelection turns "1, 3 4" into sorted, de-duplicated zero-based
// indexes below n.
func parseSelection(line string, n int) ([]int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	var indexes []int
	for _, f := range fields {
		num, err := strconv.Atoi(f)
		if err != nil || num < 1 || num > n {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", f, n)
		}
		if !slices.Contains(indexes, num-1) {
			indexes = append(indexes, num-1)
		}
	}
	slices.Sort(indexes)
	return indexes, nil
}
