package models

import (
	"time"

	"github.com/google/uuid"
)

// Order delivery status. Two states only: 0 while out for delivery (or not
// yet assigned), 1 once the crew marks it delivered.
const (
	OrderStatusPending   = 0
	OrderStatusDelivered = 1
)

type Order struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user" db:"user_id"`
	DeliveryCrewID *uuid.UUID `json:"delivery_crew" db:"delivery_crew_id"`
	Status         int        `json:"status" db:"status"`
	Total          float64    `json:"total" db:"total"`
	Date           time.Time  `json:"date" db:"date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
