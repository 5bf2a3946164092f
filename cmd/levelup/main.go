package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/levelup/internal/cli"
	"github.com/alexanderramin/levelup/internal/config"
	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/intelligence"
	"github.com/alexanderramin/levelup/internal/llm"
	"github.com/alexanderramin/levelup/internal/repository"
	"github.com/alexanderramin/levelup/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cleanup []func()
	defer func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()

	app := &cli.App{
		IsInteractive: isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()),
	}
	app.Init = func(ctx context.Context, app *cli.App) error {
		closers, err := wire(ctx, app)
		cleanup = append(cleanup, closers...)
		return err
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// wire loads configuration and builds every service the commands use. The
// returned funcs release resources in reverse order.
func wire(ctx context.Context, app *cli.App) ([]func(), error) {
	var closers []func()

	cfgPath := app.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return closers, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return closers, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return closers, fmt.Errorf("building logger: %w", err)
	}
	closers = append(closers, func() { _ = logger.Sync() })

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return closers, fmt.Errorf("opening database: %w", err)
	}
	closers = append(closers, func() { database.Close() })

	// Wire repositories
	ledgerRepo := repository.NewSQLiteLedgerRepo(database)
	customRepo := repository.NewSQLiteCustomActivityRepo(database)
	logRepo := repository.NewSQLiteActivityLogRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)
	feed := service.NewFeed(logRepo, cfg.FeedPollInterval, logger)

	// Text generation is optional; without it insights fall back and quest
	// suggestions report ErrGenerationFailed.
	var insights intelligence.InsightService = intelligence.DisabledGenerator{}
	var quests intelligence.QuestService = intelligence.DisabledGenerator{}
	if llmCfg := cfg.LLMSettings(); llmCfg.Enabled {
		client, err := llm.NewClient(ctx, llmCfg, llm.NewLogObserver(logger))
		if err != nil {
			logger.Warn("text generation disabled", zap.Error(err))
		} else {
			insights = intelligence.NewInsightService(client)
			quests = intelligence.NewQuestService(client)
		}
	}

	catalog := service.NewCatalogService(customRepo, observer)
	app.Catalog = catalog
	app.Ledger = service.NewLedgerService(ledgerRepo, catalog, uow, insights,
		service.WithPublisher(feed),
		service.WithLedgerObserver(observer),
		service.WithInsightConcurrency(cfg.InsightConcurrency),
	)
	app.ActivityLog = service.NewActivityLogService(logRepo, feed)
	app.Quests = service.NewQuestService(quests, observer)
	app.DefaultUser = cfg.ResolveUser()

	return closers, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	lvl, err := cfg.ZapLevel()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
