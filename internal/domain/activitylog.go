package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultRecentLimit is the page size of the recent-activity view.
const DefaultRecentLimit = 10

// ActivityLogEntry records one successful logging operation. Entries are
// never updated.
type ActivityLogEntry struct {
	ID           string
	UserID       string
	ActivityName string
	XPGained     int
	Timestamp    time.Time
}

func NewActivityLogEntry(userID, activityName string, xpGained int, now time.Time) ActivityLogEntry {
	return ActivityLogEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		ActivityName: activityName,
		XPGained:     xpGained,
		Timestamp:    now.UTC(),
	}
}

// SortNewestFirst orders entries by descending timestamp. Entries logged in
// the same instant are ordered by descending ID so the order is stable.
func SortNewestFirst(entries []ActivityLogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
}
