package repository

import (
	"context"

	"tabletap/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MenuRepository defines the interface for menu data access operations.
// Menu data is externally supplied; this service only reads it, apart from
// the admin availability toggle.
type MenuRepository interface {
	// GetByRestaurant retrieves all menu items for a restaurant.
	GetByRestaurant(ctx context.Context, restaurantID string) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item by its ID. Returns nil when the
	// item does not exist.
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)

	// SetAvailability flips the availability flag for an item. Returns
	// model.ErrItemNotFound when no row matches.
	SetAvailability(ctx context.Context, restaurantID, id string, available bool) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in the generated order number.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the order's line items within the provided
	// transaction.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error

	// GetByID retrieves an order by its ID along with its line items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
