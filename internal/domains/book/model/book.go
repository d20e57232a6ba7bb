package model

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a book entity.
// AverageRating và TotalReviews là denormalized columns - luôn được
// recompute cùng transaction với review mutations, không bao giờ drift.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	YearPublished *int      `json:"year_published"`
	Description   string    `json:"description"`

	// AI-generated, nullable. Regeneration overwrites.
	Summary *string `json:"summary"`

	// Denormalized review aggregates
	AverageRating float64 `json:"average_rating"` // 1 decimal
	TotalReviews  int     `json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSummary checks if book already has a persisted AI summary
func (b *Book) HasSummary() bool {
	return b.Summary != nil && *b.Summary != ""
}

// SummaryInput returns the text used as input for summary generation.
// Description trước, fallback về title+author khi description trống.
func (b *Book) SummaryInput() string {
	if b.Description != "" {
		return b.Description
	}
	return b.Title + " by " + b.Author
}
