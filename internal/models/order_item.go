package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem is the checkout-time snapshot of a CartLine. Immutable after
// creation apart from administrative deletion of the whole order.
type OrderLineItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OrderID    uuid.UUID `json:"order" db:"order_id"`
	MenuItemID uuid.UUID `json:"menuitem" db:"menuitem_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unit_price" db:"unit_price"`
	Price      float64   `json:"price" db:"price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
