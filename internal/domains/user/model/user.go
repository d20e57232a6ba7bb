package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform user entity
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`

	FullName string `json:"full_name"`
	Bio      string `json:"bio"`

	// Unordered set of genres, feed cho personalized recommendations
	PreferredGenres []string `json:"preferred_genres"`

	IsActive bool `json:"is_active"`
	IsAdmin  bool `json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
