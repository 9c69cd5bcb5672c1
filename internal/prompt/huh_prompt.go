package prompt

import (
	"github.com/charmbracelet/huh"
)

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct{}

// NewHuhPrompter creates a new huh-based prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

func stringOptions(options []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		opts[i] = huh.NewOption(opt, opt)
	}
	return opts
}

func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	var result string
	err := huh.NewSelect[string]().
		Title(title).
		Options(stringOptions(options)...).
		Value(&result).
		Run()
	return result, err
}

func (p *HuhPrompter) Input(title string, defaultValue string) (string, error) {
	result := defaultValue
	err := huh.NewInput().
		Title(title).
		Value(&result).
		Run()
	return result, err
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	result := defaultValue
	err := huh.NewConfirm().
		Title(title).
		Value(&result).
		Run()
	return result, err
}

func (p *HuhPrompter) MultiSelect(title string, options []string) ([]string, error) {
	var result []string
	err := huh.NewMultiSelect[string]().
		Title(title).
		Options(stringOptions(options)...).
		Value(&result).
		Run()
	return result, err
}
