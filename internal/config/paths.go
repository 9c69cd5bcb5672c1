package config

import (
	"path/filepath"
)

const (
	DefaultDataDir   = ".mpcproject"
	ProjectFileName  = "project.json"
	SettingsFileName = "settings.toml"
)

// Paths provides path resolution for project data files.
type Paths struct {
	projectRoot string
}

// NewPaths creates a new Paths resolver for the given project root.
func NewPaths(projectRoot string) *Paths {
	return &Paths{projectRoot: projectRoot}
}

// Root returns the project root directory.
func (p *Paths) Root() string {
	return p.projectRoot
}

// DataDir returns the .mpcproject data directory.
func (p *Paths) DataDir() string {
	return filepath.Join(p.projectRoot, DefaultDataDir)
}

// ProjectPath returns the path to the persisted project file.
func (p *Paths) ProjectPath() string {
	return filepath.Join(p.DataDir(), ProjectFileName)
}

// SettingsPath returns the path to the search settings file.
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.DataDir(), SettingsFileName)
}
