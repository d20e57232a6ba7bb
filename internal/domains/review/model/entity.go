package model

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a book review entity
type Review struct {
	ID     uuid.UUID `json:"id"`
	BookID uuid.UUID `json:"book_id"`
	UserID uuid.UUID `json:"user_id"`

	// Content
	Rating  float64 `json:"rating"` // 1.0-5.0
	Title   *string `json:"title"`
	Content string  `json:"content"`

	HelpfulVotes int `json:"helpful_votes"`

	// AI-generated, nullable
	AISummary *string `json:"ai_summary"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
