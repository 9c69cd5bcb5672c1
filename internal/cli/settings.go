package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/amterp/ra"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

func registerSettings(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("settings")
	cmd.SetDescription("Show or change search settings")

	ctx.SettingsFuzzy, _ = ra.NewString("fuzzy").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Enable or disable fuzzy search ('true' or 'false')").
		Register(cmd)

	ctx.SettingsEditSources, _ = ra.NewBool("edit-sources").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Interactively choose which search sources are enabled").
		Register(cmd)

	ctx.SettingsUsed, _ = parent.RegisterCmd(cmd)
}

func runSettings(fuzzy string, editSources, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	if err := app.LoadProject(ctx); err != nil {
		Fatal(err)
	}

	settings := app.ProjectService.Settings()
	changed := false

	if fuzzy != "" {
		value, err := strconv.ParseBool(fuzzy)
		if err != nil {
			Fatal(fmt.Errorf("invalid --fuzzy value %q (want 'true' or 'false')", fuzzy))
		}
		settings.FuzzySearch = value
		changed = true
	}

	if editSources {
		if err := pickSources(app, &settings); err != nil {
			Fatal(err)
		}
		changed = true
	}

	if changed {
		// Settings changes re-run every search; on failure nothing is
		// persisted and the old settings stay active.
		if err := app.ProjectService.UpdateSettings(ctx, settings); err != nil {
			Fatal(err)
		}
		PrintSuccess("Settings updated")
		printInvalidIdentifiers(app)
		return
	}

	printSettings(settings)
}

// pickSources prompts for the set of enabled sources, preserving the
// configured search order.
func pickSources(app *App, settings *model.SearchSettings) error {
	if len(settings.Sources) == 0 {
		return fmt.Errorf("no sources configured in settings.toml")
	}

	var keys []string
	for _, src := range settings.Sources {
		keys = append(keys, src.Key)
	}

	enabled, err := app.Prompter.MultiSelect("Enabled sources", keys)
	if err != nil {
		return err
	}

	on := make(map[string]bool, len(enabled))
	for _, key := range enabled {
		on[key] = true
	}
	for i := range settings.Sources {
		settings.Sources[i].Enabled = on[settings.Sources[i].Key]
	}
	return nil
}

func printSettings(s model.SearchSettings) {
	labelWidth := 12
	fmt.Println(LabelValue("Backend", valueOrMuted(s.BackendURL), labelWidth))
	fmt.Println(LabelValue("Fuzzy", fmt.Sprintf("%v", s.FuzzySearch), labelWidth))
	fmt.Println(LabelValue("DPI", fmt.Sprintf("%d-%d", s.MinDPI, s.MaxDPI), labelWidth))
	fmt.Println(LabelValue("Max size", fmt.Sprintf("%d MB", s.MaxSizeMB), labelWidth))
	if len(s.Languages) > 0 {
		fmt.Println(LabelValue("Languages", strings.Join(s.Languages, ", "), labelWidth))
	}

	if len(s.Sources) == 0 {
		fmt.Println(LabelValue("Sources", RenderMuted("(all)"), labelWidth))
		return
	}
	for _, src := range s.Sources {
		state := StyleSuccess.Render("enabled")
		if !src.Enabled {
			state = RenderMuted("disabled")
		}
		fmt.Println(LabelValue("Source", fmt.Sprintf("%s (%s)", src.Key, state), labelWidth))
	}
}

func valueOrMuted(s string) string {
	if s == "" {
		return RenderMuted("(default)")
	}
	return s
}
