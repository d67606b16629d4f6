// Package prompt asks the user questions on an interactive terminal. When
// stdin or stdout is not a terminal every question resolves to its default.
package prompt

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Prompter asks the questions dotlink needs during setup
type Prompter interface {
	Confirm(question string, def bool) (bool, error)
	Input(question, def string) (string, error)
	Select(question string, options []string, def string) (string, error)
	MultiSelect(question string, options []string, defs []string) ([]string, error)
}

// New returns an interactive prompter on a terminal and a Static one
// otherwise
func New() Prompter {
	if Interactive() {
		return Terminal{}
	}
	return Static{}
}

// Interactive reports whether both stdin and stdout are terminals
func Interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Terminal prompts with pterm's interactive printers
type Terminal struct{}

// Confirm asks a yes/no question
func (Terminal) Confirm(question string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText(question).
		WithDefaultValue(def).
		Show()
}

// Input asks for a line of text
func (Terminal) Input(question, def string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(question).
		WithDefaultValue(def).
		Show()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Select asks for one of options
func (Terminal) Select(question string, options []string, def string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(question).
		WithOptions(options).
		WithDefaultOption(def).
		Show()
}

// MultiSelect asks for any number of options
func (Terminal) MultiSelect(question string, options []string, defs []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.
		WithDefaultText(question).
		WithOptions(options).
		WithDefaultOptions(defs).
		Show()
}

// Static answers every question with a fixed or default value
type Static struct {
	// Answers maps a question to its answer. Confirm accepts "y"/"yes" and
	// MultiSelect splits on commas.
	Answers map[string]string
}

// Confirm returns the recorded answer or def
func (s Static) Confirm(question string, def bool) (bool, error) {
	answer, ok := s.Answers[question]
	if !ok {
		return def, nil
	}
	switch answer {
	case "y", "Y", "yes", "true":
		return true, nil
	default:
		return false, nil
	}
}

// Input returns the recorded answer or def
func (s Static) Input(question, def string) (string, error) {
	if answer, ok := s.Answers[question]; ok {
		return answer, nil
	}
	return def, nil
}

// Select returns the recorded answer when it is one of options, else def
func (s Static) Select(question string, options []string, def string) (string, error) {
	if answer, ok := s.Answers[question]; ok {
		for _, opt := range options {
			if opt == answer {
				return answer, nil
			}
		}
	}
	return def, nil
}

// MultiSelect returns the recorded comma separated answers found in
// options, or defs
func (s Static) MultiSelect(question string, options []string, defs []string) ([]string, error) {
	answer, ok := s.Answers[question]
	if !ok {
		return defs, nil
	}
	selected := []string{}
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		for _, opt := range options {
			if opt == part {
				selected = append(selected, part)
				break
			}
		}
	}
	return selected, nil
}
