package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
)

// ServiceInterface defines review business operations
type ServiceInterface interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req model.CreateReviewRequest) (*model.ReviewResponse, error)
	GetReview(ctx context.Context, id uuid.UUID) (*model.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID uuid.UUID, isAdmin bool, reviewID uuid.UUID, req model.UpdateReviewRequest) (*model.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID uuid.UUID, isAdmin bool, reviewID uuid.UUID) error
	ListReviews(ctx context.Context, req model.ListReviewsRequest) (*model.ListReviewsResponse, error)

	// BookReviewsSummary generates an AI digest across a book's reviews
	BookReviewsSummary(ctx context.Context, bookID uuid.UUID) (*model.BookReviewsSummaryResponse, error)
}
