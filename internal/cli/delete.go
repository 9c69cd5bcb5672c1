package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"
)

func registerDelete(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("delete")
	cmd.SetDescription("Delete a slot")

	ctx.DeleteSlot, _ = ra.NewString("slot").
		SetUsage("Slot index").
		Register(cmd)

	ctx.DeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(cmd)

	ctx.DeleteUsed, _ = parent.RegisterCmd(cmd)
}

func runDelete(slotArg string, force, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	if !force {
		if nonInteractive {
			Fatal(fmt.Errorf("deleting slot %s requires --force in non-interactive mode", slotArg))
		}

		confirmed, err := app.Prompter.Confirm(
			fmt.Sprintf("Delete slot %s? Later slots shift down.", slotArg),
			false,
		)
		if err != nil {
			Fatal(err)
		}
		if !confirmed {
			PrintInfo("Cancelled")
			return
		}
	}

	if err := app.ProjectService.DeleteSlot(slotArg); err != nil {
		Fatal(err)
	}

	PrintSuccess("Deleted slot %s", slotArg)
}
