package cli

import (
	"os"
	"path/filepath"

	"github.com/amterp/ra"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/config"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/prompt"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/service"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/store"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Initialize a project in the current directory")

	ctx.InitName, _ = ra.NewString("name").
		SetShort("n").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Project name (default: directory name)").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(name string, nonInteractive bool) {
	cwd, err := os.Getwd()
	if err != nil {
		Fatal(err)
	}

	if name == "" && !nonInteractive {
		prompter := prompt.NewHuhPrompter()
		name, err = prompter.Input("Project name", filepath.Base(cwd))
		if err != nil {
			Fatal(err)
		}
	}

	// Initialize in the current directory even when a parent already has a
	// project; nested projects are allowed and the nearest one wins. So
	// skip discovery and build the stores rooted right here.
	paths := config.NewPaths(cwd)
	initService := service.NewInitService(
		store.NewProjectStore(paths),
		store.NewSettingsStore(paths),
	)

	file, err := initService.Initialize(cwd, name)
	if err != nil {
		Fatal(err)
	}

	PrintSuccess("Initialized project %q (%s)", file.Name, RenderID(file.ID))
}
