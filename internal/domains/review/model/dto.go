package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest request to create review
type CreateReviewRequest struct {
	BookID  uuid.UUID `json:"book_id"`
	Rating  float64   `json:"rating" binding:"required"`
	Title   *string   `json:"title"`
	Content string    `json:"content"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1.0).Error("rating must be at least 1.0"),
			validation.Max(5.0).Error("rating must be at most 5.0"),
		),
		validation.Field(&r.Content, validation.Length(0, 10000)),
	)
}

// UpdateReviewRequest request to update review (partial)
type UpdateReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.When(r.Rating != nil,
				validation.Min(1.0).Error("rating must be at least 1.0"),
				validation.Max(5.0).Error("rating must be at most 5.0"),
			),
		),
		validation.Field(&r.Content,
			validation.When(r.Content != nil, validation.Length(0, 10000)),
		),
	)
}

// ListReviewsRequest request to list reviews
type ListReviewsRequest struct {
	BookID *uuid.UUID `form:"book_id"`
	UserID *uuid.UUID `form:"user_id"`
	Page   int        `form:"page"`
	Limit  int        `form:"limit"`
}

func (r *ListReviewsRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ReviewResponse response for review detail
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	BookID       uuid.UUID `json:"book_id"`
	UserID       uuid.UUID `json:"user_id"`
	Rating       float64   `json:"rating"`
	Title        *string   `json:"title"`
	Content      string    `json:"content"`
	HelpfulVotes int       `json:"helpful_votes"`
	AISummary    *string   `json:"ai_summary"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse converts entity to response DTO
func ToResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		BookID:       r.BookID,
		UserID:       r.UserID,
		Rating:       r.Rating,
		Title:        r.Title,
		Content:      r.Content,
		HelpfulVotes: r.HelpfulVotes,
		AISummary:    r.AISummary,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ListReviewsResponse response for list reviews
type ListReviewsResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Pagination PaginationMeta   `json:"pagination"`
}

// PaginationMeta pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPaginationMeta builds pagination metadata
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPages := (total + limit - 1) / limit
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// BookReviewsSummaryResponse AI digest of a book's reviews
type BookReviewsSummaryResponse struct {
	BookID       uuid.UUID `json:"book_id"`
	TotalReviews int       `json:"total_reviews"`
	Summary      string    `json:"summary"`
}
