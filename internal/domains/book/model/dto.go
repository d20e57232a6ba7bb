package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBookRequest request to create book
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Genre         string `json:"genre"`
	YearPublished *int   `json:"year_published"`
	Description   string `json:"description"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Genre, validation.Length(0, 255)),
		validation.Field(&r.YearPublished,
			validation.When(r.YearPublished != nil,
				validation.Min(0).Error("year must not be negative"),
				validation.Max(time.Now().Year()+1).Error("year is in the future"),
			),
		),
		validation.Field(&r.Description, validation.Length(0, 10000)),
	)
}

// UpdateBookRequest request to update book (partial)
type UpdateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Genre         *string `json:"genre"`
	YearPublished *int    `json:"year_published"`
	Description   *string `json:"description"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 500)),
		),
		validation.Field(&r.Author,
			validation.When(r.Author != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.Genre,
			validation.When(r.Genre != nil, validation.Length(0, 255)),
		),
		validation.Field(&r.YearPublished,
			validation.When(r.YearPublished != nil,
				validation.Min(0),
				validation.Max(time.Now().Year()+1),
			),
		),
	)
}

// IsEmpty checks if the update carries no fields
func (r UpdateBookRequest) IsEmpty() bool {
	return r.Title == nil && r.Author == nil && r.Genre == nil &&
		r.YearPublished == nil && r.Description == nil
}

// ListBooksRequest request to list books
type ListBooksRequest struct {
	Genre  *string `form:"genre"`
	Author *string `form:"author"`
	Search *string `form:"search"`
	Page   int     `form:"page"`
	Limit  int     `form:"limit"`
}

func (r *ListBooksRequest) Validate() error {
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

// BookResponse response for book detail
type BookResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	YearPublished *int      `json:"year_published"`
	Description   string    `json:"description"`
	Summary       *string   `json:"summary"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToResponse converts entity to response DTO
func ToResponse(b *Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		YearPublished: b.YearPublished,
		Description:   b.Description,
		Summary:       b.Summary,
		AverageRating: b.AverageRating,
		TotalReviews:  b.TotalReviews,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ListBooksResponse response for list books
type ListBooksResponse struct {
	Books      []BookResponse `json:"books"`
	Pagination PaginationMeta `json:"pagination"`
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

// GenerateSummaryResponse response for summary generation
type GenerateSummaryResponse struct {
	BookID  uuid.UUID `json:"book_id"`
	Summary string    `json:"summary"`
}

// BookSummaryResponse book detail together with its summary status
type BookSummaryResponse struct {
	BookID       uuid.UUID `json:"book_id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	HasAISummary bool      `json:"has_ai_summary"`
}
