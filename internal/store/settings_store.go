package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/config"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/version"
)

// FileSettingsStore implements SettingsStore using the filesystem.
type FileSettingsStore struct {
	paths *config.Paths
}

// NewSettingsStore creates a new settings store.
func NewSettingsStore(paths *config.Paths) *FileSettingsStore {
	return &FileSettingsStore{paths: paths}
}

// Load reads the search settings from disk.
// Returns defaults if the file doesn't exist.
func (s *FileSettingsStore) Load() (*model.SearchSettings, error) {
	path := s.paths.SettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			settings := model.DefaultSearchSettings()
			return &settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings model.SearchSettings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings file: %w", err)
	}

	// Strict version validation (only if file exists and has content)
	if settings.Schema == "" {
		return nil, version.MissingSettingsSchema(path)
	}
	if settings.Schema != version.CurrentSettingsSchema() {
		return nil, version.InvalidSettingsSchema(path, settings.Schema)
	}

	applyGrammarDefaults(&settings)
	return &settings, nil
}

// Save writes the search settings to disk, stamping the current schema.
func (s *FileSettingsStore) Save(settings *model.SearchSettings) error {
	settings.Schema = version.CurrentSettingsSchema()

	path := s.paths.SettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(settings)
}

// Exists returns true if the settings file exists.
func (s *FileSettingsStore) Exists() bool {
	_, err := os.Stat(s.paths.SettingsPath())
	return err == nil
}

// EnsureExists writes default settings if no settings file is present.
func (s *FileSettingsStore) EnsureExists() error {
	if s.Exists() {
		return nil
	}
	settings := model.DefaultSearchSettings()
	return s.Save(&settings)
}

// applyGrammarDefaults fills in separator tokens a hand-edited file left
// blank. A blank face separator would make every line single-faced.
func applyGrammarDefaults(settings *model.SearchSettings) {
	defaults := model.DefaultSearchSettings()
	if settings.Grammar.FaceSeparator == "" {
		settings.Grammar.FaceSeparator = defaults.Grammar.FaceSeparator
	}
	if settings.Grammar.PinToken == "" {
		settings.Grammar.PinToken = defaults.Grammar.PinToken
	}
}
