package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amterp/ra"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
)

func registerAdd(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("add")
	cmd.SetDescription("Add cards from decklist text")

	ctx.AddCards, _ = ra.NewString("cards").
		SetOptional(true).
		SetUsage("Decklist text, e.g. '4x Island | b:Forest'").
		Register(cmd)

	ctx.AddFile, _ = ra.NewString("file").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Read decklist from a file instead ('-' for stdin)").
		Register(cmd)

	ctx.AddUsed, _ = parent.RegisterCmd(cmd)
}

func runAdd(cards, file string) {
	text := cards
	if file != "" {
		data, err := readInput(file)
		if err != nil {
			Fatal(err)
		}
		text = string(data)
	}
	if text == "" {
		Fatal(fmt.Errorf("nothing to add: pass decklist text or --file"))
	}

	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	added, err := app.ProjectService.AddFromText(ctx, text)
	reportAdded(added, err)
}

// reportAdded prints the outcome of an add or import. Hitting the project
// size cap truncates rather than fails, so the slots that did fit are
// already saved and we only warn about the remainder.
func reportAdded(added int, err error) {
	var capErr *apperr.CapacityExceededError
	if errors.As(err, &capErr) {
		PrintSuccess("Added %d slot(s)", added)
		PrintWarning("%v", capErr)
		return
	}
	if err != nil {
		Fatal(err)
	}
	PrintSuccess("Added %d slot(s)", added)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
