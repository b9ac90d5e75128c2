package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Station identifies the preparation area an item is routed to.
type Station string

// Valid preparation stations.
const (
	StationKitchen Station = "kitchen"
	StationBar     Station = "bar"
	StationDessert Station = "dessert"
	StationCoffee  Station = "coffee"
)

// ValidStation reports whether s is one of the known stations or empty.
// An empty station means the item has no fulfilment routing.
func ValidStation(s Station) bool {
	switch s {
	case "", StationKitchen, StationBar, StationDessert, StationCoffee:
		return true
	}
	return false
}

// MenuItem represents a dish or drink on a restaurant's menu.
// Menu data is externally supplied and read-only from this service's
// perspective; rows are mapped and validated at the repository boundary.
type MenuItem struct {
	ID            string          `json:"id" db:"id"`
	RestaurantID  string          `json:"restaurantId" db:"restaurant_id"`
	Name          string          `json:"name" db:"name"`
	LocalizedName string          `json:"localizedName,omitempty" db:"localized_name"`
	Description   string          `json:"description,omitempty" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Category      string          `json:"category" db:"category"`
	Station       Station         `json:"station,omitempty" db:"station"`
	Available     bool            `json:"available" db:"available"`
	Fasting       bool            `json:"fastingCompatible" db:"fasting"`
	PairsWith     []string        `json:"pairsWith,omitempty" db:"pairs_with"`
	OrderCount    int             `json:"orderCount" db:"order_count"`
	Rating        float64         `json:"rating" db:"-"`
	ImageURL      string          `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}
