// Package prompt abstracts interactive terminal prompts so commands can
// run identically in scripts (non-interactive) and at a real terminal.
package prompt

import "errors"

// ErrNonInteractive is returned when a prompt would be needed but the
// command was run with prompting disabled.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// Prompter asks the user for input.
type Prompter interface {
	// Select presents options and returns the chosen one.
	Select(title string, options []string) (string, error)

	// Input asks for free text, pre-filled with defaultValue.
	Input(title string, defaultValue string) (string, error)

	// Confirm asks yes/no.
	Confirm(title string, defaultValue bool) (bool, error)

	// MultiSelect returns the subset of options the user picked.
	MultiSelect(title string, options []string) ([]string, error)
}

// NoopPrompter fails every prompt. Commands running non-interactively get
// this so missing input is an error instead of a hang.
type NoopPrompter struct{}

func (p *NoopPrompter) Select(title string, options []string) (string, error) {
	return "", ErrNonInteractive
}

func (p *NoopPrompter) Input(title string, defaultValue string) (string, error) {
	return "", ErrNonInteractive
}

func (p *NoopPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	return false, ErrNonInteractive
}

func (p *NoopPrompter) MultiSelect(title string, options []string) ([]string, error) {
	return nil, ErrNonInteractive
}
