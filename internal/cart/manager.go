package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Manager owns the per-session cart stores. Each session owns its own copy
// of its cart; there is no cross-session coordination or merge, and
// concurrent writers to the same session key are last-write-wins.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
	logger    zerolog.Logger
}

// NewManager creates a cart manager backed by the given persister.
func NewManager(persister Persister, logger zerolog.Logger) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		persister: persister,
		logger:    logger.With().Str("component", "cart-manager").Logger(),
	}
}

// Session returns the cart store for a session, creating it on first touch.
// A new store is seeded from the persisted snapshot when one exists and
// passes schema validation; otherwise it starts empty. A non-empty restaurant
// slug or table number is adopted onto the store whether it is new or
// existing, so a session created by a bare cart read gains its restaurant as
// soon as a request supplies one.
func (m *Manager) Session(ctx context.Context, sessionID, restaurantSlug string, tableNumber *string) *Store {
	m.mu.Lock()
	store, ok := m.stores[sessionID]
	if !ok {
		store = NewStore(sessionID, restaurantSlug, tableNumber, m.persister, m.logger)

		if m.persister != nil {
			snap, err := m.persister.Load(ctx, sessionID)
			if err != nil {
				m.logger.Warn().
					Err(err).
					Str("session_id", sessionID).
					Msg("failed to load persisted cart, starting empty")
			} else if snap != nil {
				store.restore(snap)
				m.logger.Debug().
					Str("session_id", sessionID).
					Int("item_count", len(snap.Items)).
					Msg("cart restored from persisted snapshot")
			}
		}

		m.stores[sessionID] = store
	}
	m.mu.Unlock()

	store.adopt(ctx, restaurantSlug, tableNumber)
	return store
}

// Drop clears a session's cart and removes its persisted snapshot. Used
// after a successful checkout.
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	m.mu.Lock()
	delete(m.stores, sessionID)
	m.mu.Unlock()

	if m.persister != nil {
		if err := m.persister.Delete(ctx, sessionID); err != nil {
			m.logger.Warn().
				Err(err).
				Str("session_id", sessionID).
				Msg("failed to delete persisted cart snapshot")
		}
	}
}
