package cli

import (
	"fmt"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and progress to the next level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := app.Ledger.GetLedger(cmd.Context(), app.userID())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLedger(ledger))
			return nil
		},
	}
}
