package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/resolver"
)

func registerSet(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("set")
	cmd.SetDescription("Change a slot's query or image, or the project cardback")

	// set query
	queryCmd := ra.NewCmd("query")
	queryCmd.SetDescription("Change the search query for a slot face")

	ctx.SetQuerySlot, _ = ra.NewString("slot").
		SetUsage("Slot reference, e.g. '3' or '3:back'").
		Register(queryCmd)

	ctx.SetQueryValue, _ = ra.NewString("query").
		SetUsage("New query text, optionally prefixed 't:' or 'b:'").
		Register(queryCmd)

	ctx.SetQueryUsed, _ = cmd.RegisterCmd(queryCmd)

	// set image
	imageCmd := ra.NewCmd("image")
	imageCmd.SetDescription("Pick a specific image for a slot face")

	ctx.SetImageSlot, _ = ra.NewString("slot").
		SetUsage("Slot reference, e.g. '3' or '3:back'").
		Register(imageCmd)

	ctx.SetImageValue, _ = ra.NewString("identifier").
		SetOptional(true).
		SetUsage("Image identifier (omit to pick from candidates)").
		Register(imageCmd)

	ctx.SetImageUsed, _ = cmd.RegisterCmd(imageCmd)

	// set cardback
	cardbackCmd := ra.NewCmd("cardback")
	cardbackCmd.SetDescription("Change the shared project cardback")

	ctx.SetCardbackValue, _ = ra.NewString("identifier").
		SetUsage("Cardback image identifier").
		Register(cardbackCmd)

	ctx.SetCardbackUsed, _ = cmd.RegisterCmd(cardbackCmd)

	ctx.SetUsed, _ = parent.RegisterCmd(cmd)
}

func runSetQuery(slotArg, rawQuery string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	if err := app.ProjectService.SetQuery(ctx, slotArg, rawQuery); err != nil {
		Fatal(err)
	}

	PrintSuccess("Updated query for slot %s", slotArg)
	printInvalidIdentifiers(app)
}

func runSetImage(slotArg, identifier string, nonInteractive bool) {
	if identifier == "" && nonInteractive {
		Fatal(fmt.Errorf("an image identifier is required in non-interactive mode"))
	}

	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	if identifier == "" {
		identifier, err = pickCandidate(app, slotArg)
		if err != nil {
			Fatal(err)
		}
	}

	if err := app.ProjectService.SetImage(slotArg, identifier); err != nil {
		Fatal(err)
	}

	PrintSuccess("Slot %s now uses %s", slotArg, RenderID(identifier))
}

// pickCandidate prompts for one of the search results for the slot's query.
func pickCandidate(app *App, slotArg string) (string, error) {
	proj := app.ProjectService.Project()
	ref, err := resolver.Resolve(slotArg, proj.Size())
	if err != nil {
		return "", err
	}

	member := proj.Member(ref.Face, ref.Slot)
	if member == nil || member.Query == nil {
		return "", fmt.Errorf("slot %s has no query to pick results from", slotArg)
	}

	candidates, ok := app.ProjectService.Reconciler().Results().For(*member.Query)
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no search results for slot %s", slotArg)
	}

	return app.Prompter.Select(fmt.Sprintf("Image for slot %s", slotArg), candidates)
}

func runSetCardback(identifier string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	if err := app.ProjectService.SetCardback(identifier); err != nil {
		Fatal(err)
	}

	PrintSuccess("Cardback set to %s", RenderID(identifier))
}
