package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/amterp/ra"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/export"
)

func registerExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Export the project as order XML or decklist text")

	// export xml
	xmlCmd := ra.NewCmd("xml")
	xmlCmd.SetDescription("Export the project as an order XML document")

	ctx.ExportXMLOut, _ = ra.NewString("out").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output file (default: stdout)").
		Register(xmlCmd)

	ctx.ExportXMLStock, _ = ra.NewString("stock").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Card stock name, passed through to the document").
		Register(xmlCmd)

	ctx.ExportXMLFoil, _ = ra.NewBool("foil").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Mark the order as foil").
		Register(xmlCmd)

	ctx.ExportXMLUsed, _ = cmd.RegisterCmd(xmlCmd)

	// export decklist
	decklistCmd := ra.NewCmd("decklist")
	decklistCmd.SetDescription("Export the project as decklist text")

	ctx.ExportDecklistOut, _ = ra.NewString("out").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output file (default: stdout)").
		Register(decklistCmd)

	ctx.ExportDecklistUsed, _ = cmd.RegisterCmd(decklistCmd)

	ctx.ExportUsed, _ = parent.RegisterCmd(cmd)
}

func runExportXML(out, stock string, foil bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	data, err := app.ProjectService.ExportXML(ctx, export.OrderDetails{Stock: stock, Foil: foil})
	if err != nil {
		Fatal(err)
	}

	writeOutput(out, data)
}

func runExportDecklist(out string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	text, err := app.ProjectService.ExportDecklist(ctx)
	if err != nil {
		Fatal(err)
	}

	writeOutput(out, []byte(text))
}

func writeOutput(path string, data []byte) {
	if path == "" {
		fmt.Print(string(data))
		return
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		Fatal(err)
	}
	PrintSuccess("Wrote %s", path)
}
