package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/amterp/ra"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/resolver"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Display slot details")

	ctx.ShowSlot, _ = ra.NewString("slot").
		SetUsage("Slot reference, e.g. '3' or '3:back'").
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(slotArg string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	proj := app.ProjectService.Project()
	ref, err := resolver.Resolve(slotArg, proj.Size())
	if err != nil {
		Fatal(err)
	}

	member := proj.Member(ref.Face, ref.Slot)
	if member == nil {
		PrintInfo("Slot %d has no %s face", ref.Slot, ref.Face)
		return
	}

	fmt.Println(TitleBox(fmt.Sprintf("Slot %d (%s)", ref.Slot, ref.Face)))

	labelWidth := 10
	query := "(none)"
	if member.Query != nil {
		query = member.Query.Type.Prefix() + member.Query.Text
	}
	fmt.Println(LabelValue("Query", query, labelWidth))

	image := RenderMuted("pending")
	if member.SelectedImage != "" {
		image = RenderID(member.SelectedImage)
	}
	fmt.Println(LabelValue("Image", image, labelWidth))
	fmt.Println(LabelValue("Selected", fmt.Sprintf("%v", member.Selected), labelWidth))

	printCandidates(ctx, app, member)
}

// printCandidates lists the search results for the member's query, with
// metadata names where the backend knows them.
func printCandidates(ctx context.Context, app *App, member *model.ProjectMember) {
	if member.Query == nil {
		return
	}

	results, ok := app.ProjectService.Reconciler().Results().For(*member.Query)
	if !ok || len(results) == 0 {
		return
	}

	records, err := app.ProjectService.Oracle().Metadata(ctx, results)
	if err != nil {
		// Candidate names are decoration; the identifiers still print.
		records = nil
	}

	fmt.Println()
	fmt.Println(RenderBold("Candidates:"))
	for i, id := range results {
		marker := " "
		if id == member.SelectedImage {
			marker = StyleSuccess.Render(IconSuccess)
		}
		name := ""
		if rec, ok := records[id]; ok && rec.Name != "" {
			name = "  " + rec.Name
		}
		fmt.Printf(" %s %2d. %s%s\n", marker, i, RenderID(id), strings.TrimRight(name, " "))
	}
}
