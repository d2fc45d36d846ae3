package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username" validate:"required,max=50"`
	Email        string    `db:"email" json:"email" validate:"required,email,max=255"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Identity is what the auth gate vouches for on every call.
type Identity struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}
