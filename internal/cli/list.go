package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/export"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/util"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List project slots")

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList() {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	proj := app.ProjectService.Project()
	file := app.ProjectService.File()

	size := proj.Size()
	fmt.Println(TitleBox(file.Name))
	fmt.Printf("%d card(s), bracket %d\n", size, export.BracketFor(size))
	fmt.Printf("Updated: %s\n", RenderMuted(util.FormatMillis(file.UpdatedAtMillis)))
	if proj.Cardback() != "" {
		fmt.Printf("Cardback: %s\n", RenderID(proj.Cardback()))
	}
	if size == 0 {
		PrintInfo("Project is empty. Add cards with 'mpcproject add'.")
		return
	}

	fmt.Println()
	for i, slot := range proj.Slots() {
		fmt.Printf("%s %s\n", StyleBold.Render(fmt.Sprintf("%3d", i)), renderMember(slot.Front))
		if slot.Back != nil {
			fmt.Printf("    %s %s\n", RenderMuted("back:"), renderMember(slot.Back))
		}
	}

	printInvalidIdentifiers(app)
}

// renderMember formats one face for list output: the query that drives it
// and the image currently selected, or the hole where one should be.
func renderMember(m *model.ProjectMember) string {
	if m == nil {
		return RenderMuted("(empty)")
	}

	q := RenderMuted("(no query)")
	if m.Query != nil {
		q = m.Query.Type.Prefix() + m.Query.Text
	}

	img := RenderMuted("pending")
	if m.SelectedImage != "" {
		img = RenderID(m.SelectedImage)
	}

	line := fmt.Sprintf("%s  %s", q, img)
	if m.Selected {
		line += " " + StyleInfo.Render("*")
	}
	return line
}

func printInvalidIdentifiers(app *App) {
	records := app.ProjectService.Reconciler().InvalidIdentifiers()
	if len(records) == 0 {
		return
	}

	fmt.Println()
	for _, rec := range records {
		PrintWarning("slot %d (%s): image %s is no longer available", rec.Slot, rec.Face, rec.Identifier)
	}
}
