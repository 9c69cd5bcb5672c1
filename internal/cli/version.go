package cli

import (
	"fmt"

	"github.com/amterp/ra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func registerVersion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("version")
	cmd.SetDescription("Print the mpcproject version")

	ctx.VersionUsed, _ = parent.RegisterCmd(cmd)
}

func runVersion() {
	fmt.Printf("mpcproject %s\n", Version)
}
