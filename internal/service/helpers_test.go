package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/repository"
	"github.com/alexanderramin/levelup/internal/testutil"
)

var errDiskGone = errors.New("disk I/O error")

type testEnv struct {
	db      *sql.DB
	ledgers repository.LedgerRepo
	logs    repository.ActivityLogRepo
	custom  repository.CustomActivityRepo
	catalog CatalogService
}

func newTestEnv(t *testing.T, database *sql.DB) *testEnv {
	t.Helper()
	custom := repository.NewSQLiteCustomActivityRepo(database)
	return &testEnv{
		db:      database,
		ledgers: repository.NewSQLiteLedgerRepo(database),
		logs:    repository.NewSQLiteActivityLogRepo(database),
		custom:  custom,
		catalog: NewCatalogService(custom),
	}
}

func (e *testEnv) ledgerService(uow db.UnitOfWork, opts ...LedgerOption) LedgerService {
	if uow == nil {
		uow = testutil.NewTestUoW(e.db)
	}
	return NewLedgerService(e.ledgers, e.catalog, uow, stubInsights{}, opts...)
}

// stubInsights answers every level with "level N", or with the fallback
// for levels listed in fail.
type stubInsights struct {
	fail map[int]bool
}

func (s stubInsights) FetchLevelInsight(_ context.Context, level int) domain.LevelInsight {
	if s.fail[level] {
		return domain.LevelInsight{Level: level, Text: domain.InsightFallbackText, Fallback: true}
	}
	return domain.LevelInsight{Level: level, Text: fmt.Sprintf("level %d", level)}
}

// countingPublisher records Publish calls.
type countingPublisher struct {
	mu    sync.Mutex
	users []string
}

func (p *countingPublisher) Publish(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = append(p.users, userID)
}

func (p *countingPublisher) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.users...)
}

// brokenCustomRepo fails every call so tests can prove no store access.
type brokenCustomRepo struct {
	calls int
}

func (r *brokenCustomRepo) ListByUser(context.Context, string) (map[string]int, error) {
	r.calls++
	return nil, errDiskGone
}

func (r *brokenCustomRepo) Create(context.Context, string, domain.ActivityDefinition) error {
	r.calls++
	return errDiskGone
}
