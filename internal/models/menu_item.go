package models

import (
	"time"

	"github.com/google/uuid"
)

type MenuItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Price       float64   `json:"price" db:"price"`
	Featured    bool      `json:"featured" db:"featured"`
	CategoryID  uuid.UUID `json:"category" db:"category_id"`
	ImageObject *string   `json:"image_object,omitempty" db:"image_object"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MenuItemFilter holds the supported list query parameters: filtering by
// category slug and ordering by price.
type MenuItemFilter struct {
	CategorySlug string
	OrderByPrice string // "asc", "desc" or empty
	Limit        int
	Offset       int
}
