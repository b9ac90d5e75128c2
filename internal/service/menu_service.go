package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tabletap/internal/model"
	"tabletap/internal/repository"
	"tabletap/internal/upsell"

	"github.com/rs/zerolog"
)

// menuService implements MenuService with a coarse TTL cache in front of the
// repository. The menu catalogue is externally supplied and read-mostly, so
// time-based invalidation is enough; admin availability writes invalidate
// the affected restaurant's entry immediately.
type menuService struct {
	repo     repository.MenuRepository
	cacheTTL time.Duration
	logger   zerolog.Logger

	mu    sync.Mutex
	cache map[string]menuCacheEntry
}

type menuCacheEntry struct {
	items   []model.MenuItem
	expires time.Time
}

// NewMenuService creates a new menu service. A non-positive cacheTTL
// disables caching.
func NewMenuService(repo repository.MenuRepository, cacheTTL time.Duration, logger zerolog.Logger) MenuService {
	return &menuService{
		repo:     repo,
		cacheTTL: cacheTTL,
		cache:    make(map[string]menuCacheEntry),
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// GetMenu retrieves the validated menu for a restaurant. Every row is
// integrity-checked before being served; a single failing row fails the
// whole read, since corrupt menu data must never reach a customer.
func (s *menuService) GetMenu(ctx context.Context, restaurantID string, fastingOnly bool) ([]model.MenuItem, error) {
	items, err := s.load(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return upsell.FilterFasting(items, fastingOnly), nil
}

// GetUpsell computes up to limit suggestions for a selected item.
func (s *menuService) GetUpsell(ctx context.Context, restaurantID, itemID string, limit int) ([]model.MenuItem, error) {
	if limit <= 0 {
		limit = upsell.DefaultLimit
	}

	items, err := s.load(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	var current *model.MenuItem
	for i := range items {
		if items[i].ID == itemID {
			current = &items[i]
			break
		}
	}
	if current == nil {
		s.logger.Debug().
			Str("restaurant_id", restaurantID).
			Str("item_id", itemID).
			Msg("upsell requested for unknown item")
		return nil, model.ErrItemNotFound
	}

	return upsell.Recommend(current, items, limit), nil
}

// SetAvailability flips an item's availability flag and invalidates the
// restaurant's cached menu.
func (s *menuService) SetAvailability(ctx context.Context, restaurantID, itemID string, available bool) error {
	if err := s.repo.SetAvailability(ctx, restaurantID, itemID, available); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, restaurantID)
	s.mu.Unlock()

	return nil
}

// load returns the validated menu for a restaurant, consulting the TTL
// cache first.
func (s *menuService) load(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	if s.cacheTTL > 0 {
		s.mu.Lock()
		entry, ok := s.cache[restaurantID]
		s.mu.Unlock()
		if ok && time.Now().Before(entry.expires) {
			return entry.items, nil
		}
	}

	items, err := s.repo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("restaurant_id", restaurantID).
			Msg("failed to load menu")
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	for i := range items {
		if err := model.ValidateMenuItem(&items[i]); err != nil {
			s.logger.Error().
				Str("restaurant_id", restaurantID).
				Str("item_id", items[i].ID).
				Msg("menu item failed integrity validation")
			return nil, model.ErrMenuIntegrity
		}
		items[i].Rating = upsell.StableRating(items[i].ID)
	}

	if s.cacheTTL > 0 {
		s.mu.Lock()
		s.cache[restaurantID] = menuCacheEntry{
			items:   items,
			expires: time.Now().Add(s.cacheTTL),
		}
		s.mu.Unlock()
	}

	return items, nil
}
