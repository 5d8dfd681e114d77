package models

import (
	"time"

	"storefront-service/cart"
	"storefront-service/checkout"
	"storefront-service/order"
)

// SessionState is everything the storefront remembers about one shopper
// between requests.
type SessionState struct {
	ID           string              `json:"id"`
	Cart         cart.Snapshot       `json:"cart"`
	Checkout     checkout.Snapshot   `json:"checkout"`
	Confirmation *order.Confirmation `json:"confirmation,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
