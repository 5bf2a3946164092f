package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
)

var testUserCounter atomic.Int64

// NewTestUserID returns a user id unique within the test binary.
func NewTestUserID() string {
	return fmt.Sprintf("user-%03d", testUserCounter.Add(1))
}

// Log entry options
type EntryOption func(*domain.ActivityLogEntry)

func WithTimestamp(ts time.Time) EntryOption {
	return func(e *domain.ActivityLogEntry) {
		e.Timestamp = ts.UTC()
	}
}

func WithXPGained(xp int) EntryOption {
	return func(e *domain.ActivityLogEntry) {
		e.XPGained = xp
	}
}

func NewTestLogEntry(userID, activity string, opts ...EntryOption) *domain.ActivityLogEntry {
	e := domain.NewActivityLogEntry(userID, activity, 10, time.Now())
	for _, opt := range opts {
		opt(&e)
	}
	return &e
}

// NewTestEntries returns n entries for userID spaced one minute apart,
// oldest first, ending at end.
func NewTestEntries(userID string, n int, end time.Time) []*domain.ActivityLogEntry {
	entries := make([]*domain.ActivityLogEntry, 0, n)
	for i := n - 1; i >= 0; i-- {
		entries = append(entries, NewTestLogEntry(userID, fmt.Sprintf("Activity %d", n-1-i),
			WithTimestamp(end.Add(-time.Duration(i)*time.Minute)),
			WithXPGained(5+n-1-i),
		))
	}
	return entries
}
