package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/repository"
	"go.uber.org/zap"
)

// DefaultFeedPollInterval is how often subscriptions re-read the store to
// pick up writes from other processes sharing the database.
const DefaultFeedPollInterval = 2 * time.Second

// Feed fans committed log entries out to live subscriptions. In-process
// writers call Publish; writes from other processes are seen on the next
// poll.
type Feed struct {
	logs         repository.ActivityLogRepo
	pollInterval time.Duration
	log          *zap.Logger

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewFeed creates a feed. A non-positive pollInterval disables polling.
func NewFeed(logs repository.ActivityLogRepo, pollInterval time.Duration, log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{
		logs:         logs,
		pollInterval: pollInterval,
		log:          log.Named("feed"),
		subs:         make(map[*Subscription]struct{}),
	}
}

// Subscription is one live view of a user's recent log.
type Subscription struct {
	feed    *Feed
	userID  string
	limit   int
	updates chan []domain.ActivityLogEntry
	notify  chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
}

// Updates delivers snapshots, newest entry first. A consumer that falls
// behind only sees the latest snapshot. The channel is closed when the
// subscription ends.
func (s *Subscription) Updates() <-chan []domain.ActivityLogEntry {
	return s.updates
}

// Close ends the subscription and waits for its goroutine to exit.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

// Subscribe reads the initial snapshot synchronously so a store failure is
// reported to the caller, then starts watching.
func (f *Feed) Subscribe(ctx context.Context, userID string, limit int) (*Subscription, error) {
	initial, err := f.logs.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		feed:    f,
		userID:  userID,
		limit:   limit,
		updates: make(chan []domain.ActivityLogEntry, 1),
		notify:  make(chan struct{}, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	sub.updates <- initial

	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()

	go sub.run(ctx, initial)
	return sub, nil
}

// Publish wakes every subscription for userID. It never blocks.
func (f *Feed) Publish(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
}

func (f *Feed) remove(sub *Subscription) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()
}

// Subscribers reports the number of open subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (s *Subscription) run(ctx context.Context, last []domain.ActivityLogEntry) {
	defer close(s.done)
	defer close(s.updates)
	defer s.feed.remove(s)

	var tick <-chan time.Time
	if s.feed.pollInterval > 0 {
		ticker := time.NewTicker(s.feed.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.notify:
		case <-tick:
		}

		snap, err := s.feed.logs.ListRecent(ctx, s.userID, s.limit)
		if err != nil {
			if ctx.Err() == nil {
				s.feed.log.Warn("refreshing live log", zap.String("user", s.userID), zap.Error(err))
			}
			continue
		}
		if sameEntries(last, snap) {
			continue
		}
		last = snap
		s.deliver(snap)
	}
}

// deliver replaces any unread snapshot with snap. run is the only sender,
// so after draining the buffered slot the send cannot block.
func (s *Subscription) deliver(snap []domain.ActivityLogEntry) {
	select {
	case s.updates <- snap:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- snap
}

func sameEntries(a, b []domain.ActivityLogEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
