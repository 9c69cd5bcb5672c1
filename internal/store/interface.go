package store

import "github.com/chilli-axe/mpc-autofill-sub000/internal/model"

// ProjectStore handles project persistence.
type ProjectStore interface {
	Load() (*model.ProjectFile, error)
	Save(project *model.ProjectFile) error
	Exists() bool
	Delete() error
}

// SettingsStore handles search settings persistence.
type SettingsStore interface {
	Load() (*model.SearchSettings, error)
	Save(settings *model.SearchSettings) error
	Exists() bool
	EnsureExists() error
}
