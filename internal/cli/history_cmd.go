package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errWatchNeedsTerminal = errors.New("--watch requires an interactive terminal")

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var watch bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently logged activities, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !watch {
				entries, err := app.ActivityLog.RecentLog(ctx, app.userID(), limit)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(entries, app.now()))
				return nil
			}

			if !app.IsInteractive {
				return errWatchNeedsTerminal
			}
			sub, err := app.ActivityLog.Subscribe(ctx, app.userID(), limit)
			if err != nil {
				return err
			}
			defer sub.Close()

			p := tea.NewProgram(
				newHistoryModel(sub.Updates(), app.now),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultRecentLimit, "Number of entries to show")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep the view open and refresh as activities are logged")

	return cmd
}
