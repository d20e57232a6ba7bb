package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
)

// ServiceInterface defines book business operations
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error)

	// GenerateSummary regenerates and persists the book's AI summary
	GenerateSummary(ctx context.Context, id uuid.UUID) (*model.GenerateSummaryResponse, error)

	// GetSummary returns the persisted summary, generating one if absent
	GetSummary(ctx context.Context, id uuid.UUID) (*model.BookSummaryResponse, error)
}
