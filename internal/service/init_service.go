package service

import (
	"path/filepath"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/id"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/store"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/util"
)

// InitService handles project initialization.
type InitService struct {
	projectStore  store.ProjectStore
	settingsStore store.SettingsStore
}

// NewInitService creates a new init service.
func NewInitService(projectStore store.ProjectStore, settingsStore store.SettingsStore) *InitService {
	return &InitService{
		projectStore:  projectStore,
		settingsStore: settingsStore,
	}
}

// Initialize creates a new empty project rooted at root. If name is empty
// the directory name is used. Default settings are written alongside it.
func (s *InitService) Initialize(root, name string) (*model.ProjectFile, error) {
	if s.projectStore.Exists() {
		return nil, apperr.InvalidField("project", "already initialized")
	}

	if name == "" {
		name = filepath.Base(root)
	}

	file := &model.ProjectFile{
		ID:              id.Generate(),
		Name:            name,
		Slots:           []model.Slot{},
		CreatedAtMillis: util.NowMillis(),
	}

	if err := s.projectStore.Save(file); err != nil {
		return nil, err
	}
	if err := s.settingsStore.EnsureExists(); err != nil {
		return nil, err
	}

	return file, nil
}
