package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/config"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/discovery"
	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/oracle"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/prompt"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/service"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/store"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	Paths          *config.Paths
	ProjectStore   store.ProjectStore
	SettingsStore  store.SettingsStore
	Prompter       prompt.Prompter
	InitService    *service.InitService
	ProjectService *service.ProjectService
	ProjectRoot    string
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool) (*App, error) {
	var projectRoot string
	result, err := discovery.DiscoverProject()
	if err != nil {
		return nil, err
	}
	if result != nil {
		projectRoot = result.ProjectRoot
	}
	// projectRoot may be empty - that's OK, RequireProject() will catch it

	paths := config.NewPaths(projectRoot)
	projectStore := store.NewProjectStore(paths)
	settingsStore := store.NewSettingsStore(paths)

	settings, err := settingsStore.Load()
	if err != nil {
		// Fall back to defaults so read-only commands still work; the
		// settings command surfaces the real problem.
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		defaults := model.DefaultSearchSettings()
		settings = &defaults
	}

	backend, err := oracle.NewHTTPOracle(settings.BackendURL)
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	initService := service.NewInitService(projectStore, settingsStore)
	projectService := service.NewProjectService(projectStore, settingsStore, backend)

	return &App{
		Paths:          paths,
		ProjectStore:   projectStore,
		SettingsStore:  settingsStore,
		Prompter:       prompter,
		InitService:    initService,
		ProjectService: projectService,
		ProjectRoot:    projectRoot,
	}, nil
}

// RequireProject ensures a project is initialized in the current directory
// or one of its parents.
func (a *App) RequireProject() error {
	if a.ProjectRoot == "" {
		return &apperr.NotInitializedError{}
	}

	if !a.ProjectStore.Exists() {
		return &apperr.NotInitializedError{Path: a.ProjectRoot}
	}
	return nil
}

// LoadProject loads the project and runs the initial reconcile pass.
func (a *App) LoadProject(ctx context.Context) error {
	if err := a.RequireProject(); err != nil {
		return err
	}
	return a.ProjectService.Load(ctx)
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
