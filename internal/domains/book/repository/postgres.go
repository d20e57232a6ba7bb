package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview-backend/internal/domains/book/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

const bookColumns = `
	id, title, author, genre, year_published, description, summary,
	average_rating, total_reviews, created_at, updated_at
`

func scanBook(row pgx.Row, book *model.Book) error {
	return row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.YearPublished,
		&book.Description,
		&book.Summary,
		&book.AverageRating,
		&book.TotalReviews,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, genre, year_published, description, summary,
			average_rating, total_reviews, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.YearPublished,
		book.Description,
		book.Summary,
		book.AverageRating,
		book.TotalReviews,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book := &model.Book{}
	err := scanBook(r.pool.QueryRow(ctx, query, id), book)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET
			title = $2,
			author = $3,
			genre = $4,
			year_published = $5,
			description = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.YearPublished,
		book.Description,
	)

	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// UpdateSummary persists a freshly generated AI summary
func (r *postgresBookRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	query := `UPDATE books SET summary = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, summary)
	if err != nil {
		return fmt.Errorf("failed to update book summary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// =====================================================
// DELETE
// =====================================================

// Delete xoá book; reviews đi theo qua FK ON DELETE CASCADE
func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresBookRepository) List(ctx context.Context, req model.ListBooksRequest) ([]model.Book, int, error) {
	// Build WHERE clause động theo filters
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if req.Genre != nil && *req.Genre != "" {
		where += fmt.Sprintf(" AND genre ILIKE $%d", argIdx)
		args = append(args, "%"+*req.Genre+"%")
		argIdx++
	}
	if req.Author != nil && *req.Author != "" {
		where += fmt.Sprintf(" AND author ILIKE $%d", argIdx)
		args = append(args, "%"+*req.Author+"%")
		argIdx++
	}
	if req.Search != nil && *req.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*req.Search+"%")
		argIdx++
	}

	// Count total
	var total int
	countQuery := `SELECT COUNT(*) FROM books` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	// Fetch page
	query := `SELECT ` + bookColumns + ` FROM books` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var book model.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, total, nil
}

// =====================================================
// LIST ALL (ranking snapshot)
// =====================================================

func (r *postgresBookRepository) ListAll(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var book model.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}
