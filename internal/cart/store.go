package cart

import (
	"context"
	"sync"

	"tabletap/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store is the single source of truth for one session's in-progress
// selection. Items keep insertion order and are keyed by id. Every mutation
// persists the full snapshot through the configured persister; persistence
// is best-effort and its failures are logged, never surfaced to the caller.
//
// The store itself does not enforce quantity bounds. Callers are expected to
// pass quantities >= 1; the validators enforce the invariant whenever data
// crosses a trust boundary (snapshot reload, order submission). In
// particular UpdateQuantity(id, 0) leaves a zero-quantity entry in place
// rather than removing it.
type Store struct {
	mu             sync.Mutex
	sessionID      string
	restaurantSlug string
	tableNumber    *string
	items          []model.CartItem
	persister      Persister
	logger         zerolog.Logger
}

// NewStore creates an empty cart store for a session.
func NewStore(sessionID, restaurantSlug string, tableNumber *string, persister Persister, logger zerolog.Logger) *Store {
	return &Store{
		sessionID:      sessionID,
		restaurantSlug: restaurantSlug,
		tableNumber:    tableNumber,
		persister:      persister,
		logger:         logger.With().Str("component", "cart").Str("session_id", sessionID).Logger(),
	}
}

// restore replaces the store's contents with a validated snapshot.
func (s *Store) restore(snap *model.CartSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items[:0], snap.Items...)
	s.restaurantSlug = snap.RestaurantSlug
	s.tableNumber = snap.TableNumber
}

// adopt records the restaurant context carried by a later request. A session
// first touched by a bare cart read has no restaurant yet and picks one up on
// the first add; a non-empty value always wins over the stored one, matching
// the last-write-wins posture of the store. Empty values never erase context.
func (s *Store) adopt(ctx context.Context, restaurantSlug string, tableNumber *string) {
	s.mu.Lock()
	changed := false
	if restaurantSlug != "" && restaurantSlug != s.restaurantSlug {
		s.restaurantSlug = restaurantSlug
		changed = true
	}
	if tableNumber != nil && (s.tableNumber == nil || *s.tableNumber != *tableNumber) {
		s.tableNumber = tableNumber
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.persist(ctx)
	}
}

// AddItem adds item to the cart. If an entry with the same id already
// exists, its quantity is incremented by item.Quantity and the original
// instructions are retained; otherwise the item is appended as given.
func (s *Store) AddItem(ctx context.Context, item model.CartItem) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += item.Quantity
			s.mu.Unlock()
			s.persist(ctx)
			return
		}
	}
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.persist(ctx)
}

// RemoveItem deletes the entry with the given id. Removing an id that is not
// present is a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.persist(ctx)
}

// UpdateQuantity replaces the quantity of the matching entry. Returns false
// if no entry with the given id exists. No lower bound is enforced here.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) bool {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.persist(ctx)
	}
	return found
}

// Clear resets the cart to an empty sequence.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = s.items[:0]
	s.mu.Unlock()
	s.persist(ctx)
}

// Subtotal returns the sum of price x quantity over all entries. Pure; an
// empty cart yields zero.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for i := range s.items {
		qty := decimal.NewFromInt(int64(s.items[i].Quantity))
		total = total.Add(s.items[i].Price.Mul(qty))
	}
	return total
}

// Items returns a copy of the current item sequence in insertion order.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Snapshot returns the durable form of the cart's current state.
func (s *Store) Snapshot() *model.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return &model.CartSnapshot{
		Items:          items,
		RestaurantSlug: s.restaurantSlug,
		TableNumber:    s.tableNumber,
	}
}

// persist writes the full snapshot under the session's fixed key.
// Last write wins; failures are logged and swallowed.
func (s *Store) persist(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, s.sessionID, s.Snapshot()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist cart snapshot")
	}
}
