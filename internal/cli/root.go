package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/levelup/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services CLI commands call into.
type App struct {
	Catalog     service.CatalogService
	Ledger      service.LedgerService
	ActivityLog service.ActivityLogService
	Quests      service.QuestService

	// DefaultUser is used when --user is not given.
	DefaultUser string
	// IsInteractive enables huh forms and the live history view.
	IsInteractive bool
	// Now defaults to time.Now.
	Now func() time.Time

	// Init, when set, runs after flag parsing and before any command. It
	// wires the services from ConfigPath.
	Init       func(ctx context.Context, app *App) error
	ConfigPath string

	user string
}

func (a *App) userID() string {
	if a.user != "" {
		return a.user
	}
	return a.DefaultUser
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "levelup" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "levelup",
		Short:         "Log daily activities, earn XP and level up",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Init == nil {
				return nil
			}
			return app.Init(cmd.Context(), app)
		},
	}

	root.PersistentFlags().AddFlagSet(globalFlags(app))

	root.AddCommand(
		newLogCmd(app),
		newActivityCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
		newQuestsCmd(app),
	)

	return root
}

func globalFlags(app *App) *pflag.FlagSet {
	fs := pflag.NewFlagSet("levelup", pflag.ContinueOnError)
	fs.StringVarP(&app.user, "user", "u", "", "User id to act as (default from config or OS user)")
	fs.StringVar(&app.ConfigPath, "config", "", "Path to config file (default ~/.levelup/config.yaml)")
	return fs
}
