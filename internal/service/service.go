package service

import (
	"context"

	"tabletap/internal/model"
)

// MenuService defines operations for reading and curating a restaurant's
// menu.
type MenuService interface {
	// GetMenu retrieves the validated menu for a restaurant, optionally
	// filtered to fasting-compatible items.
	GetMenu(ctx context.Context, restaurantID string, fastingOnly bool) ([]model.MenuItem, error)

	// GetUpsell computes up to limit suggestions for a selected item.
	GetUpsell(ctx context.Context, restaurantID, itemID string, limit int) ([]model.MenuItem, error)

	// SetAvailability flips an item's availability flag (admin operation).
	SetAvailability(ctx context.Context, restaurantID, itemID string, available bool) error
}

// OrderService defines operations for order submission.
type OrderService interface {
	// Submit validates, persists and announces a new order.
	Submit(ctx context.Context, req *model.OrderRequest) (*model.OrderConfirmation, error)
}
