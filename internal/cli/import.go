package cli

import (
	"context"

	"github.com/amterp/ra"
)

func registerImport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("import")
	cmd.SetDescription("Import slots from a CSV or XML file")

	// import csv
	csvCmd := ra.NewCmd("csv")
	csvCmd.SetDescription("Import slots from a CSV file")

	ctx.ImportCSVFile, _ = ra.NewString("file").
		SetUsage("CSV file path ('-' for stdin)").
		Register(csvCmd)

	ctx.ImportCSVUsed, _ = cmd.RegisterCmd(csvCmd)

	// import xml
	xmlCmd := ra.NewCmd("xml")
	xmlCmd.SetDescription("Import slots from an order XML file")

	ctx.ImportXMLFile, _ = ra.NewString("file").
		SetUsage("XML file path ('-' for stdin)").
		Register(xmlCmd)

	ctx.ImportXMLUsed, _ = cmd.RegisterCmd(xmlCmd)

	ctx.ImportUsed, _ = parent.RegisterCmd(cmd)
}

func runImportCSV(file string) {
	data, err := readInput(file)
	if err != nil {
		Fatal(err)
	}

	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	added, err := app.ProjectService.ImportCSV(ctx, data)
	reportAdded(added, err)
}

func runImportXML(file string) {
	data, err := readInput(file)
	if err != nil {
		Fatal(err)
	}

	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	added, err := app.ProjectService.ImportXML(ctx, data)
	reportAdded(added, err)
}
