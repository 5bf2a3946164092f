package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log <activity...>",
		Short: "Log a completed activity and earn its XP",
		Long: "Log a completed activity by its exact name. Words are joined with\n" +
			"single spaces, so quoting is optional: levelup log Bath/Shower",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			summary, err := app.Ledger.LogActivity(cmd.Context(), app.userID(), name)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogSummary(summary))
			return nil
		},
	}
}
