package cli

import (
	"context"

	"github.com/amterp/ra"
)

func registerRefresh(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("refresh")
	cmd.SetDescription("Re-run every search and repair stale selections")

	ctx.RefreshUsed, _ = parent.RegisterCmd(cmd)
}

func runRefresh() {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	if err := app.ProjectService.Refresh(ctx); err != nil {
		Fatal(err)
	}

	PrintSuccess("Refreshed %d slot(s)", app.ProjectService.Project().Size())
	printInvalidIdentifiers(app)
}
