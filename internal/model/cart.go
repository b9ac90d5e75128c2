package model

import "github.com/shopspring/decimal"

// CartItem represents a single selected menu item in an in-progress cart.
// Quantity and instructions (Notes) travel with the item; the id is unique
// within a cart.
type CartItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	LocalizedName string          `json:"localizedName,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Station       Station         `json:"station,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Modifiers     string          `json:"modifiers,omitempty"`
}

// CartSnapshot is the durable form of a session's cart, written under a
// fixed per-session key and revalidated before being trusted on reload.
type CartSnapshot struct {
	Items          []CartItem `json:"items"`
	RestaurantSlug string     `json:"restaurantSlug"`
	TableNumber    *string    `json:"tableNumber"`
}
