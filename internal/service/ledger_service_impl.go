package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/intelligence"
	"github.com/alexanderramin/levelup/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxConflictRetries bounds how often a log is retried after another
	// writer changed the ledger between our read and our write.
	MaxConflictRetries = 3

	DefaultInsightConcurrency = 4
)

type ledgerService struct {
	ledgers     repository.LedgerRepo
	catalog     CatalogService
	uow         db.UnitOfWork
	insights    intelligence.InsightService
	publisher   LogPublisher
	observer    UseCaseObserver
	concurrency int
	now         func() time.Time
}

type LedgerOption func(*ledgerService)

// WithPublisher notifies p after each committed log.
func WithPublisher(p LogPublisher) LedgerOption {
	return func(s *ledgerService) { s.publisher = p }
}

func WithLedgerObserver(o UseCaseObserver) LedgerOption {
	return func(s *ledgerService) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithInsightConcurrency bounds parallel insight requests for multi-level gains.
func WithInsightConcurrency(n int) LedgerOption {
	return func(s *ledgerService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) { s.now = now }
}

func NewLedgerService(
	ledgers repository.LedgerRepo,
	catalog CatalogService,
	uow db.UnitOfWork,
	insights intelligence.InsightService,
	opts ...LedgerOption,
) LedgerService {
	s := &ledgerService{
		ledgers:     ledgers,
		catalog:     catalog,
		uow:         uow,
		insights:    insights,
		observer:    NoopUseCaseObserver{},
		concurrency: DefaultInsightConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.insights == nil {
		s.insights = intelligence.DisabledGenerator{}
	}
	return s
}

func (s *ledgerService) GetLedger(ctx context.Context, userID string) (*domain.UserLedger, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	l, err := s.ledgers.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, persistenceErr("loading ledger", err)
	}
	return l, nil
}

func (s *ledgerService) LogActivity(ctx context.Context, userID, activityName string) (summary *domain.LogSummary, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": userID, "activity": activityName}
	defer func() {
		if summary != nil {
			fields["xp_gained"] = summary.XPGained
			fields["level"] = summary.Level
			fields["levels_gained"] = len(summary.LevelUps)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-activity",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var xp int
	if xp, err = s.catalog.ResolveXP(ctx, userID, activityName); err != nil {
		return nil, err
	}

	var (
		next   domain.UserLedger
		events []domain.LevelUpEvent
	)
	for attempt := 0; ; attempt++ {
		next, events, err = s.commitGain(ctx, userID, activityName, xp)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrVersionConflict) && attempt < MaxConflictRetries {
			fields["conflicts"] = attempt + 1
			continue
		}
		if errors.Is(err, domain.ErrInvalidLedger) || errors.Is(err, domain.ErrInvalidXP) {
			return nil, err
		}
		err = persistenceErr("logging activity", err)
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(userID)
	}

	return &domain.LogSummary{
		ActivityName: activityName,
		XPGained:     xp,
		XP:           next.XP,
		Level:        next.Level,
		LevelUps:     s.fetchInsights(ctx, events),
	}, nil
}

// commitGain performs one read-modify-write of the ledger and appends the
// log entry in the same transaction.
func (s *ledgerService) commitGain(ctx context.Context, userID, activityName string, xp int) (domain.UserLedger, []domain.LevelUpEvent, error) {
	var (
		next   domain.UserLedger
		events []domain.LevelUpEvent
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLedgers := repository.NewSQLiteLedgerRepo(tx)
		txLogs := repository.NewSQLiteActivityLogRepo(tx)

		current, err := txLedgers.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		next, events, err = domain.ApplyGain(*current, xp)
		if err != nil {
			return err
		}
		if err := txLedgers.CompareAndSwap(ctx, &next, current.Version); err != nil {
			return err
		}

		entry := domain.NewActivityLogEntry(userID, activityName, xp, s.now())
		return txLogs.Append(ctx, &entry)
	})
	return next, events, err
}

// fetchInsights requests one insight per level reached, in parallel, and
// returns them in ascending level order.
func (s *ledgerService) fetchInsights(ctx context.Context, events []domain.LevelUpEvent) []domain.LevelInsight {
	if len(events) == 0 {
		return nil
	}
	out := make([]domain.LevelInsight, len(events))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, ev := range events {
		g.Go(func() error {
			out[i] = s.insights.FetchLevelInsight(ctx, ev.NewLevel)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
