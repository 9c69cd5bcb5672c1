package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool

	// init command
	InitUsed *bool
	InitName *string

	// add command
	AddUsed  *bool
	AddCards *string
	AddFile  *string

	// list command
	ListUsed *bool

	// show command
	ShowUsed *bool
	ShowSlot *string

	// set command
	SetUsed *bool

	// set query
	SetQueryUsed  *bool
	SetQuerySlot  *string
	SetQueryValue *string

	// set image
	SetImageUsed  *bool
	SetImageSlot  *string
	SetImageValue *string

	// set cardback
	SetCardbackUsed  *bool
	SetCardbackValue *string

	// delete command
	DeleteUsed  *bool
	DeleteSlot  *string
	DeleteForce *bool

	// toggle command
	ToggleUsed      *bool
	ToggleSlot      *string
	TogglePropagate *bool

	// refresh command
	RefreshUsed *bool

	// import command
	ImportUsed *bool

	// import csv
	ImportCSVUsed *bool
	ImportCSVFile *string

	// import xml
	ImportXMLUsed *bool
	ImportXMLFile *string

	// export command
	ExportUsed *bool

	// export xml
	ExportXMLUsed  *bool
	ExportXMLOut   *string
	ExportXMLStock *string
	ExportXMLFoil  *bool

	// export decklist
	ExportDecklistUsed *bool
	ExportDecklistOut  *string

	// settings command
	SettingsUsed        *bool
	SettingsFuzzy       *string
	SettingsEditSources *bool

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// version command
	VersionUsed *bool
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("mpcproject")
	cmd.SetDescription("Card image project assembler")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerAdd(cmd, ctx)
	registerList(cmd, ctx)
	registerShow(cmd, ctx)
	registerSet(cmd, ctx)
	registerDelete(cmd, ctx)
	registerToggle(cmd, ctx)
	registerRefresh(cmd, ctx)
	registerImport(cmd, ctx)
	registerExport(cmd, ctx)
	registerSettings(cmd, ctx)
	registerServe(cmd, ctx)
	registerVersion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx)
}

func executeCommand(ctx *CommandContext) {
	switch {
	case *ctx.InitUsed:
		runInit(*ctx.InitName, *ctx.NonInteractive)

	case *ctx.AddUsed:
		runAdd(*ctx.AddCards, *ctx.AddFile)

	case *ctx.ListUsed:
		runList()

	case *ctx.ShowUsed:
		runShow(*ctx.ShowSlot)

	case *ctx.SetQueryUsed:
		runSetQuery(*ctx.SetQuerySlot, *ctx.SetQueryValue)

	case *ctx.SetImageUsed:
		runSetImage(*ctx.SetImageSlot, *ctx.SetImageValue, *ctx.NonInteractive)

	case *ctx.SetCardbackUsed:
		runSetCardback(*ctx.SetCardbackValue)

	case *ctx.DeleteUsed:
		runDelete(*ctx.DeleteSlot, *ctx.DeleteForce, *ctx.NonInteractive)

	case *ctx.ToggleUsed:
		runToggle(*ctx.ToggleSlot, *ctx.TogglePropagate)

	case *ctx.RefreshUsed:
		runRefresh()

	case *ctx.ImportCSVUsed:
		runImportCSV(*ctx.ImportCSVFile)

	case *ctx.ImportXMLUsed:
		runImportXML(*ctx.ImportXMLFile)

	case *ctx.ExportXMLUsed:
		runExportXML(*ctx.ExportXMLOut, *ctx.ExportXMLStock, *ctx.ExportXMLFoil)

	case *ctx.ExportDecklistUsed:
		runExportDecklist(*ctx.ExportDecklistOut)

	case *ctx.SettingsUsed:
		runSettings(*ctx.SettingsFuzzy, *ctx.SettingsEditSources, *ctx.NonInteractive)

	case *ctx.ServeUsed:
		runServe(*ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.VersionUsed:
		runVersion()
	}
}
