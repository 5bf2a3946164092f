package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const questsUnavailableNotice = "Quest suggestions are unavailable right now. Try again later."

func newQuestsCmd(app *App) *cobra.Command {
	var noAdopt bool

	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Suggest new activities to try",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			stop := startSpinner(out, app.IsInteractive, "Asking for quests...")
			quests, err := app.Quests.SuggestQuests(ctx)
			stop()
			if errors.Is(err, domain.ErrGenerationFailed) {
				fmt.Fprintln(out, formatter.StyleYellow.Render(questsUnavailableNotice))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprint(out, formatter.FormatQuests(quests))
			if noAdopt || !app.IsInteractive || len(quests) == 0 {
				return nil
			}

			var picked []domain.GeneratedQuest
			if err := adoptQuestsForm(quests, &picked).Run(); err != nil {
				if isAbort(err) {
					return nil
				}
				return err
			}
			return adoptQuests(ctx, app, out, picked)
		},
	}

	cmd.Flags().BoolVar(&noAdopt, "no-adopt", false, "Only print suggestions")

	return cmd
}

// adoptQuests defines each picked quest as a custom activity. A rejected
// quest does not stop the rest.
func adoptQuests(ctx context.Context, app *App, out io.Writer, picked []domain.GeneratedQuest) error {
	for _, q := range picked {
		if err := defineActivity(ctx, app, out, q.Name, q.XP); err != nil {
			return err
		}
	}
	return nil
}

func adoptQuestsForm(quests []domain.GeneratedQuest, picked *[]domain.GeneratedQuest) *huh.Form {
	options := make([]huh.Option[domain.GeneratedQuest], 0, len(quests))
	for _, q := range quests {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (+%d XP)", q.Name, q.XP), q))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[domain.GeneratedQuest]().
				Title("Adopt quests as custom activities").
				Description("space to toggle, enter to confirm").
				Options(options...).
				Value(picked),
		),
	).WithTheme(levelupHuhTheme()).WithShowHelp(false)
}
