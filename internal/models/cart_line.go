package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one pending (user, menu item) row. The price column is always
// quantity * unit_price, computed server-side; a line lives only until the
// owning user checks out.
type CartLine struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user" db:"user_id"`
	MenuItemID uuid.UUID `json:"menuitem" db:"menuitem_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unit_price" db:"unit_price"`
	Price      float64   `json:"price" db:"price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
