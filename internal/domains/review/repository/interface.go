package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
)

// ReviewRepository defines review data access operations.
// Create/Update/Delete recompute aggregates của book trong cùng
// transaction - caller không cần làm gì thêm để giữ invariant.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	UpdateAISummary(ctx context.Context, id uuid.UUID, summary string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req model.ListReviewsRequest) ([]model.Review, int, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error)
}
