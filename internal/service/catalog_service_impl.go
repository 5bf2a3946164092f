package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/repository"
)

type catalogService struct {
	custom   repository.CustomActivityRepo
	observer UseCaseObserver
}

func NewCatalogService(custom repository.CustomActivityRepo, observers ...UseCaseObserver) CatalogService {
	return &catalogService{custom: custom, observer: useCaseObserverOrNoop(observers)}
}

// load always re-reads the custom set so definitions made by other
// sessions are visible.
func (s *catalogService) load(ctx context.Context, userID string) (*domain.Catalog, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	custom, err := s.custom.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistenceErr("loading custom activities", err)
	}
	return domain.NewUserCatalog(custom), nil
}

func (s *catalogService) ListActivities(ctx context.Context, userID string) (map[string]int, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.Names(), nil
}

func (s *catalogService) Definitions(ctx context.Context, userID string) ([]domain.ActivityDefinition, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

func (s *catalogService) ResolveXP(ctx context.Context, userID, name string) (int, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	def, err := c.Resolve(name)
	if err != nil {
		return 0, err
	}
	return def.XPValue, nil
}

func (s *catalogService) DefineActivity(ctx context.Context, userID, name string, xp int) (def *domain.ActivityDefinition, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": userID, "xp": xp}
	defer func() {
		if reason := domain.RejectionReason(err); reason != "" {
			fields["reason"] = reason
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "define-activity",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = validateUserID(userID); err != nil {
		return nil, err
	}
	// Shape checks need no store access.
	var normalized string
	if normalized, err = domain.NormalizeActivityName(name); err != nil {
		return nil, err
	}
	if err = domain.ValidateXP(xp); err != nil {
		return nil, err
	}
	fields["name"] = normalized

	var c *domain.Catalog
	if c, err = s.load(ctx, userID); err != nil {
		return nil, err
	}
	var checked domain.ActivityDefinition
	if checked, err = c.CheckDefinable(normalized, xp); err != nil {
		return nil, err
	}

	if err = s.custom.Create(ctx, userID, checked); err != nil {
		// A concurrent define of the same name lost the race on the key.
		if errors.Is(err, repository.ErrDuplicate) {
			err = fmt.Errorf("%w: %q", domain.ErrDuplicateName, normalized)
			return nil, err
		}
		err = persistenceErr("saving custom activity", err)
		return nil, err
	}
	return &checked, nil
}
