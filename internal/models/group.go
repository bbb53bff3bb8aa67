package models

import (
	"time"

	"github.com/google/uuid"
)

// Role group names. Membership in one of these groups is what the
// authorization layer checks; the is_staff flag on User is separate.
const (
	GroupManager      = "manager"
	GroupDeliveryCrew = "delivery-crew"
)

type Group struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type UserGroup struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	GroupID   uuid.UUID `json:"group_id" db:"group_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
