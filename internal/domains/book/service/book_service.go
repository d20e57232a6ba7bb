package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/repository"
	"bookreview-backend/internal/infrastructure/ai"
	"bookreview-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const summaryCacheTTL = 5 * time.Minute

type bookService struct {
	bookRepo   repository.BookRepository
	cache      cache.Cache
	summarizer *ai.Summarizer
}

func NewBookService(
	bookRepo repository.BookRepository,
	cacheClient cache.Cache,
	summarizer *ai.Summarizer,
) ServiceInterface {
	return &bookService{
		bookRepo:   bookRepo,
		cache:      cacheClient,
		summarizer: summarizer,
	}
}

// =====================================================
// CREATE BOOK
// =====================================================

func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Create book entity
	now := time.Now()
	book := &model.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		YearPublished: req.YearPublished,
		Description:   req.Description,
		AverageRating: 0.0,
		TotalReviews:  0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Step 3: Save to database
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	// Step 4: Invalidate recommendation caches (new candidate appeared)
	s.invalidateRecommendationCaches(ctx)

	response := model.ToResponse(book)
	return &response, nil
}

// =====================================================
// GET BOOK
// =====================================================

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrBookNotFound {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	response := model.ToResponse(book)
	return &response, nil
}

// =====================================================
// UPDATE BOOK
// =====================================================

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Load current state
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrBookNotFound {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if req.IsEmpty() {
		response := model.ToResponse(book)
		return &response, nil
	}

	// Step 3: Apply partial update
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.YearPublished != nil {
		book.YearPublished = req.YearPublished
	}
	if req.Description != nil {
		book.Description = *req.Description
	}

	// Step 4: Persist
	if err := s.bookRepo.Update(ctx, book); err != nil {
		if err == model.ErrBookNotFound {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	// Step 5: Invalidate recommendation caches (genre/metadata may have changed)
	s.invalidateRecommendationCaches(ctx)

	response := model.ToResponse(book)
	return &response, nil
}

// =====================================================
// DELETE BOOK
// =====================================================

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	// Reviews die with the book via FK cascade, no recompute needed
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if err == model.ErrBookNotFound {
			return model.NewBookNotFoundError()
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.invalidateRecommendationCaches(ctx)
	return nil
}

// =====================================================
// LIST BOOKS
// =====================================================

func (s *bookService) ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	books, total, err := s.bookRepo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	responses := make([]model.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, model.ToResponse(&books[i]))
	}

	return &model.ListBooksResponse{
		Books:      responses,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// =====================================================
// AI SUMMARY
// =====================================================

// GenerateSummary regenerates the book summary and persists it.
// Luôn bypass existing summary - endpoint này là explicit regeneration.
func (s *bookService) GenerateSummary(ctx context.Context, id uuid.UUID) (*model.GenerateSummaryResponse, error) {
	// Step 1: Load book
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrBookNotFound {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	// Step 2: Summarize (total - degrades to fallback, never errors)
	summary := s.summarizeCached(ctx, book.SummaryInput())

	// Step 3: Persist
	if err := s.bookRepo.UpdateSummary(ctx, id, summary); err != nil {
		if err == model.ErrBookNotFound {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to persist summary: %w", err)
	}

	return &model.GenerateSummaryResponse{BookID: id, Summary: summary}, nil
}

// GetSummary returns the persisted summary, generating one on first access
func (s *bookService) GetSummary(ctx context.Context, id uuid.UUID) (*model.BookSummaryResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrBookNotFound {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if book.HasSummary() {
		return &model.BookSummaryResponse{
			BookID:       book.ID,
			Title:        book.Title,
			Summary:      *book.Summary,
			HasAISummary: true,
		}, nil
	}

	// Generate lazily on first access
	summary := s.summarizeCached(ctx, book.SummaryInput())
	if err := s.bookRepo.UpdateSummary(ctx, id, summary); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("failed to persist lazy summary")
	}

	return &model.BookSummaryResponse{
		BookID:       book.ID,
		Title:        book.Title,
		Summary:      summary,
		HasAISummary: true,
	}, nil
}

// summarizeCached dedupes identical inputs qua content-hash cache key
func (s *bookService) summarizeCached(ctx context.Context, text string) string {
	key := summaryCacheKey(text)

	var cached string
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return cached
	}

	summary := s.summarizer.Summarize(ctx, text)

	if err := s.cache.Set(ctx, key, summary, summaryCacheTTL); err != nil {
		log.Debug().Err(err).Msg("failed to cache summary")
	}

	return summary
}

func summaryCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "summary:" + hex.EncodeToString(sum[:])
}

// invalidateRecommendationCaches clears ranking caches after book mutations.
// Best-effort: cache errors chỉ log, không bao giờ fail mutation.
func (s *bookService) invalidateRecommendationCaches(ctx context.Context) {
	for _, pattern := range []string{"popular:*", "rec:*", "similar:*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			log.Debug().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache")
			return
		}
	}
}
