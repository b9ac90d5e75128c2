package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. Only the initial state is
// owned by this service; later transitions belong to the fulfilment system.
type OrderStatus string

// OrderStatusPending is the status assigned to every newly created order.
const OrderStatusPending OrderStatus = "pending"

// Order represents a submitted, persisted order derived from a cart snapshot
// plus table and restaurant context. Immutable after creation in this scope.
type Order struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	OrderNumber  string          `json:"orderNumber" db:"order_number"`
	RestaurantID string          `json:"restaurantId" db:"restaurant_id"`
	TableNumber  string          `json:"tableNumber" db:"table_number"`
	Items        []OrderLine     `json:"items"`
	TotalPrice   decimal.Decimal `json:"totalPrice" db:"total_price"`
	Notes        string          `json:"notes,omitempty" db:"notes"`
	Status       OrderStatus     `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// OrderLine represents a persisted line item: a point-in-time snapshot of a
// cart item, not a reference into the live menu.
type OrderLine struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ItemID    string          `json:"id" db:"item_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Station   Station         `json:"station,omitempty" db:"station"`
	Notes     string          `json:"notes,omitempty" db:"notes"`
	Modifiers string          `json:"modifiers,omitempty" db:"modifiers"`
}

// OrderRequest represents the request payload for submitting an order.
type OrderRequest struct {
	RestaurantID string          `json:"restaurant_id"`
	TableNumber  string          `json:"table_number"`
	Items        []CartItem      `json:"items"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Notes        string          `json:"notes,omitempty"`
}

// OrderConfirmation is the slice of a persisted order returned to the client.
type OrderConfirmation struct {
	ID          uuid.UUID   `json:"id"`
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"status"`
}

// OrderResponse represents the response payload for an order submission.
type OrderResponse struct {
	Success bool               `json:"success"`
	Order   *OrderConfirmation `json:"order"`
}

// OrderNotification is the payload sent to the external notification
// channel after an order is durably recorded.
type OrderNotification struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Restaurant  string          `json:"restaurant_id"`
	TableNumber string          `json:"table_number"`
	Items       []OrderLine     `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
