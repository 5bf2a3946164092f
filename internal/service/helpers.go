package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/domain"
)

// MaxRecentLimit bounds the page size of recent-log reads.
const MaxRecentLimit = 100

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id must not be empty", domain.ErrInvalidUser)
	}
	return nil
}

// persistenceErr marks a store failure as ErrPersistenceUnavailable while
// keeping the cause inspectable.
func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistenceUnavailable, err)
}

// clampLimit maps non-positive limits to the default page and caps the rest.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return domain.DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}
