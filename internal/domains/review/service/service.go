package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/repository"
	"bookreview-backend/internal/infrastructure/ai"
	"bookreview-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

// Reviews dài hơn ngưỡng này sẽ được sinh per-review AI summary
const reviewSummaryMinLen = 200

// Giới hạn số per-review summaries sinh trong một digest request
const maxSummariesPerDigest = 5

type reviewService struct {
	reviewRepo repository.ReviewRepository
	cache      cache.Cache
	summarizer *ai.Summarizer
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	cacheClient cache.Cache,
	summarizer *ai.Summarizer,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		cache:      cacheClient,
		summarizer: summarizer,
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

func (s *reviewService) CreateReview(
	ctx context.Context,
	userID uuid.UUID,
	req model.CreateReviewRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}
	if req.BookID == uuid.Nil {
		return nil, model.NewInvalidInputError(fmt.Errorf("book_id is required"))
	}

	// Step 2: Create review entity
	now := time.Now()
	review := &model.Review{
		ID:        uuid.New(),
		BookID:    req.BookID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Step 3: Save to database (aggregates recomputed in the same tx)
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		switch err {
		case model.ErrAlreadyReviewed:
			return nil, model.NewAlreadyReviewedError()
		case model.ErrBookNotFound:
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Step 4: Invalidate ranking caches for this book
	s.invalidateCaches(ctx, review.BookID)

	response := model.ToResponse(review)
	return &response, nil
}

// =====================================================
// GET REVIEW
// =====================================================

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*model.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrReviewNotFound {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	response := model.ToResponse(review)
	return &response, nil
}

// =====================================================
// UPDATE REVIEW
// =====================================================

func (s *reviewService) UpdateReview(
	ctx context.Context,
	userID uuid.UUID,
	isAdmin bool,
	reviewID uuid.UUID,
	req model.UpdateReviewRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Load and check ownership
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if err == model.ErrReviewNotFound {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if review.UserID != userID && !isAdmin {
		return nil, model.NewUnauthorizedError("You can only update your own reviews")
	}

	// Step 3: Apply partial update
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = req.Title
	}
	if req.Content != nil {
		review.Content = *req.Content
		// Content changed, stale summary không còn đúng
		review.AISummary = nil
	}

	// Step 4: Persist (aggregates recomputed in the same tx)
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if err == model.ErrReviewNotFound {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	// Step 5: Invalidate ranking caches
	s.invalidateCaches(ctx, review.BookID)

	response := model.ToResponse(review)
	return &response, nil
}

// =====================================================
// DELETE REVIEW
// =====================================================

func (s *reviewService) DeleteReview(
	ctx context.Context,
	userID uuid.UUID,
	isAdmin bool,
	reviewID uuid.UUID,
) error {
	// Step 1: Load and check ownership
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if err == model.ErrReviewNotFound {
			return model.NewReviewNotFoundError()
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.UserID != userID && !isAdmin {
		return model.NewUnauthorizedError("You can only delete your own reviews")
	}

	// Step 2: Delete (aggregates recomputed in the same tx)
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if err == model.ErrReviewNotFound {
			return model.NewReviewNotFoundError()
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	// Step 3: Invalidate ranking caches
	s.invalidateCaches(ctx, review.BookID)

	return nil
}

// =====================================================
// LIST REVIEWS
// =====================================================

func (s *reviewService) ListReviews(ctx context.Context, req model.ListReviewsRequest) (*model.ListReviewsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	reviews, total, err := s.reviewRepo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	responses := make([]model.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, model.ToResponse(&reviews[i]))
	}

	return &model.ListReviewsResponse{
		Reviews:    responses,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// =====================================================
// BOOK REVIEWS SUMMARY
// =====================================================

// BookReviewsSummary generates an AI digest across a book's reviews.
// Tiện thể backfill per-review summaries cho các reviews dài chưa có.
func (s *reviewService) BookReviewsSummary(ctx context.Context, bookID uuid.UUID) (*model.BookReviewsSummaryResponse, error) {
	reviews, err := s.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	if len(reviews) == 0 {
		return &model.BookReviewsSummaryResponse{
			BookID:       bookID,
			TotalReviews: 0,
			Summary:      "No reviews yet for this book.",
		}, nil
	}

	// Backfill per-review summaries, bounded per request
	generated := 0
	for i := range reviews {
		if generated >= maxSummariesPerDigest {
			break
		}
		r := &reviews[i]
		if r.AISummary != nil || len(r.Content) < reviewSummaryMinLen {
			continue
		}

		summary := s.summarizer.Summarize(ctx, r.Content)
		if err := s.reviewRepo.UpdateAISummary(ctx, r.ID, summary); err != nil {
			log.Warn().Err(err).Str("review_id", r.ID.String()).Msg("failed to persist review summary")
			continue
		}
		r.AISummary = &summary
		generated++
	}

	// Digest over the combined review texts
	var sb strings.Builder
	for i := range reviews {
		r := &reviews[i]
		fmt.Fprintf(&sb, "Review (rating %.1f): ", r.Rating)
		if r.AISummary != nil {
			sb.WriteString(*r.AISummary)
		} else {
			sb.WriteString(r.Content)
		}
		sb.WriteString("\n")
	}

	digest := s.summarizer.Summarize(ctx, sb.String())

	return &model.BookReviewsSummaryResponse{
		BookID:       bookID,
		TotalReviews: len(reviews),
		Summary:      digest,
	}, nil
}

// invalidateCaches clears ranking caches after review mutations.
// Best-effort: cache unavailability không bao giờ fail mutation.
func (s *reviewService) invalidateCaches(ctx context.Context, bookID uuid.UUID) {
	patterns := []string{"popular:*", "rec:*", fmt.Sprintf("similar:%s*", bookID)}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			log.Debug().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache")
			return
		}
	}
}
