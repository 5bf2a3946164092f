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

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"activities"},
		Short:   "List and define activities",
	}
	cmd.AddCommand(
		newActivityListCmd(app),
		newActivityDefineCmd(app),
	)
	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List built-in and custom activities",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := app.Catalog.Definitions(cmd.Context(), app.userID())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivities(defs))
			return nil
		},
	}
}

func newActivityDefineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "define <name> <xp>",
		Short: "Define a custom activity",
		Long: "Define a custom activity worth a positive amount of XP. The name must\n" +
			"not match a built-in or an existing custom activity. Run without\n" +
			"arguments in a terminal to fill in a form.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 || (len(args) == 0 && app.IsInteractive) {
				return nil
			}
			return fmt.Errorf("requires <name> <xp>, got %d argument(s)", len(args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var name, xpText string
			if len(args) == 2 {
				name, xpText = args[0], args[1]
			} else if err := defineActivityForm(&name, &xpText).Run(); err != nil {
				if isAbort(err) {
					return nil
				}
				return err
			}

			xp, err := domain.ParseXP(xpText)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRejection(domain.RejectionReason(err), err))
				return nil
			}
			return defineActivity(cmd.Context(), app, cmd.OutOrStdout(), name, xp)
		},
	}
}

// defineActivity registers one custom activity and reports the outcome.
// Rejections are printed; only store failures are returned.
func defineActivity(ctx context.Context, app *App, out io.Writer, name string, xp int) error {
	def, err := app.Catalog.DefineActivity(ctx, app.userID(), name, xp)
	if err != nil {
		if reason := domain.RejectionReason(err); reason != "" {
			fmt.Fprint(out, formatter.FormatRejection(reason, err))
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "%s %s %s\n", formatter.StyleGreen.Render("✔ Defined"), formatter.Bold(def.Name), formatter.XPGain(def.XPValue))
	return nil
}

func defineActivityForm(name, xp *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity name").
				Value(name).
				Validate(func(s string) error {
					_, err := domain.NormalizeActivityName(s)
					return err
				}),
			huh.NewInput().
				Title("XP reward").
				Placeholder("25").
				Value(xp).
				Validate(func(s string) error {
					_, err := domain.ParseXP(s)
					return err
				}),
		),
	).WithTheme(levelupHuhTheme()).WithShowHelp(false)
}

// isAbort reports whether a huh form was cancelled by the user.
func isAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}
