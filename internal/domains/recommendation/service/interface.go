package service

import (
	"context"

	"github.com/google/uuid"

	bookmodel "bookreview-backend/internal/domains/book/model"
	"bookreview-backend/pkg/cache"
)

// RecommendationResponse personalized recommendations with AI reasoning
type RecommendationResponse struct {
	Books     []bookmodel.BookResponse `json:"books"`
	Reasoning string                   `json:"reasoning"`
	BasedOn   []string                 `json:"based_on"`
}

// ContentSummaryResponse ad-hoc content summary
type ContentSummaryResponse struct {
	Summary       string `json:"summary"`
	ContentLength int    `json:"content_length"`
}

// ServiceInterface defines recommendation operations
type ServiceInterface interface {
	// Recommend returns personalized recommendations for a user
	Recommend(ctx context.Context, userID uuid.UUID, genre string, count int) (*RecommendationResponse, error)

	// Popular returns the highest ranked books, optionally filtered by genre
	Popular(ctx context.Context, genre string, limit int) ([]bookmodel.BookResponse, error)

	// Similar returns books with overlapping genres
	Similar(ctx context.Context, bookID uuid.UUID, limit int) ([]bookmodel.BookResponse, error)

	// GenerateSummary summarizes arbitrary content
	GenerateSummary(ctx context.Context, content string) (*ContentSummaryResponse, error)

	// Cache administration
	CacheStats(ctx context.Context) (cache.Stats, error)
	ClearCache(ctx context.Context) error
}
