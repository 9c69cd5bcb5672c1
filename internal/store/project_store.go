package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/config"
	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/util"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/version"
)

// FileProjectStore implements ProjectStore using the filesystem.
type FileProjectStore struct {
	paths *config.Paths
}

// NewProjectStore creates a new project store.
func NewProjectStore(paths *config.Paths) *FileProjectStore {
	return &FileProjectStore{paths: paths}
}

// Load reads the project file from disk.
func (s *FileProjectStore) Load() (*model.ProjectFile, error) {
	path := s.paths.ProjectPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.ProjectNotInitialized(s.paths.Root())
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var project model.ProjectFile
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("invalid project file: %w", err)
	}

	// Strict version validation
	if project.Version == 0 {
		return nil, version.MissingProjectVersion(path)
	}
	if project.Version != version.CurrentProjectVersion {
		return nil, version.InvalidProjectVersion(path, project.Version, version.CurrentProjectVersion)
	}

	return &project, nil
}

// Save writes the project file to disk, stamping the current schema
// version and update timestamp.
func (s *FileProjectStore) Save(project *model.ProjectFile) error {
	project.Version = version.CurrentProjectVersion
	project.UpdatedAtMillis = util.NowMillis()

	path := s.paths.ProjectPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Exists returns true if the project file exists.
func (s *FileProjectStore) Exists() bool {
	_, err := os.Stat(s.paths.ProjectPath())
	return err == nil
}

// Delete removes the project file from disk.
func (s *FileProjectStore) Delete() error {
	if err := os.Remove(s.paths.ProjectPath()); err != nil {
		if os.IsNotExist(err) {
			return apperr.ProjectNotInitialized(s.paths.Root())
		}
		return fmt.Errorf("failed to delete project file: %w", err)
	}
	return nil
}
