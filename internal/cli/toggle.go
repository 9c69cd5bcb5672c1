package cli

import (
	"context"

	"github.com/amterp/ra"
)

func registerToggle(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("toggle")
	cmd.SetDescription("Toggle a slot face's multi-select mark")

	ctx.ToggleSlot, _ = ra.NewString("slot").
		SetUsage("Slot reference, e.g. '3' or '3:back'").
		Register(cmd)

	ctx.TogglePropagate, _ = ra.NewBool("all").
		SetShort("a").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Mark every slot sharing this face's query the same way").
		Register(cmd)

	ctx.ToggleUsed, _ = parent.RegisterCmd(cmd)
}

func runToggle(slotArg string, propagate bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	if err := app.ProjectService.ToggleSelection(slotArg); err != nil {
		Fatal(err)
	}

	if propagate {
		if err := app.ProjectService.PropagateSelection(slotArg); err != nil {
			Fatal(err)
		}
	}

	PrintSuccess("Toggled slot %s", slotArg)
}
