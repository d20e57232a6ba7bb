package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
)

// BookRepository defines book data access operations
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req model.ListBooksRequest) ([]model.Book, int, error)

	// ListAll trả về snapshot toàn bộ books cho recommendation ranking
	ListAll(ctx context.Context) ([]model.Book, error)
}
