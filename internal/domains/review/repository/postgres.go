package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

const reviewColumns = `
	id, book_id, user_id, rating, title, content,
	helpful_votes, ai_summary, created_at, updated_at
`

func scanReview(row pgx.Row, review *model.Review) error {
	return row.Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.Rating,
		&review.Title,
		&review.Content,
		&review.HelpfulVotes,
		&review.AISummary,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reviews (
				id, book_id, user_id, rating, title, content,
				helpful_votes, ai_summary, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		_, err := tx.Exec(ctx, query,
			review.ID,
			review.BookID,
			review.UserID,
			review.Rating,
			review.Title,
			review.Content,
			review.HelpfulVotes,
			review.AISummary,
			review.CreatedAt,
			review.UpdatedAt,
		)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505": // unique (book_id, user_id)
					return model.ErrAlreadyReviewed
				case "23503": // FK on book_id
					return model.ErrBookNotFound
				}
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		// Recompute trong cùng transaction - insert và aggregate cùng commit
		return recomputeBookStats(ctx, tx, review.BookID)
	})
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review := &model.Review{}
	err := scanReview(r.pool.QueryRow(ctx, query, id), review)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// =====================================================
// GET BY USER AND BOOK
// =====================================================

func (r *postgresReviewRepository) GetByUserAndBook(
	ctx context.Context,
	userID, bookID uuid.UUID,
) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 AND book_id = $2`

	review := &model.Review{}
	err := scanReview(r.pool.QueryRow(ctx, query, userID, bookID), review)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE reviews
			SET
				rating = $2,
				title = $3,
				content = $4,
				updated_at = NOW()
			WHERE id = $1
		`

		result, err := tx.Exec(ctx, query,
			review.ID,
			review.Rating,
			review.Title,
			review.Content,
		)

		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		if result.RowsAffected() == 0 {
			return model.ErrReviewNotFound
		}

		return recomputeBookStats(ctx, tx, review.BookID)
	})
}

// UpdateAISummary persists a generated review summary.
// Không đụng rating nên không cần recompute.
func (r *postgresReviewRepository) UpdateAISummary(ctx context.Context, id uuid.UUID, summary string) error {
	query := `UPDATE reviews SET ai_summary = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, summary)
	if err != nil {
		return fmt.Errorf("failed to update review summary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Cần book_id để recompute sau khi xoá
		var bookID uuid.UUID
		err := tx.QueryRow(ctx, `DELETE FROM reviews WHERE id = $1 RETURNING book_id`, id).Scan(&bookID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrReviewNotFound
			}
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return recomputeBookStats(ctx, tx, bookID)
	})
}

// =====================================================
// LIST
// =====================================================

func (r *postgresReviewRepository) List(ctx context.Context, req model.ListReviewsRequest) ([]model.Review, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if req.BookID != nil {
		where += fmt.Sprintf(" AND book_id = $%d", argIdx)
		args = append(args, *req.BookID)
		argIdx++
	}
	if req.UserID != nil {
		where += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *req.UserID)
		argIdx++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM reviews` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var review model.Review
		if err := scanReview(rows, &review); err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE book_id = $1 ORDER BY created_at DESC, id ASC`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var review model.Review
		if err := scanReview(rows, &review); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// =====================================================
// AGGREGATE RECOMPUTE
// =====================================================

// recomputeBookStats recomputes books.(average_rating, total_reviews)
// from scratch over live reviews. Chạy trong transaction của mutation:
// fail ở đây → toàn bộ mutation rollback, không bao giờ có partial state.
func recomputeBookStats(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) error {
	rows, err := tx.Query(ctx, `SELECT rating FROM reviews WHERE book_id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	ratings := []float64{}
	for rows.Next() {
		var rating float64
		if err := rows.Scan(&rating); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate ratings: %w", err)
	}

	avg, count := model.Aggregate(ratings)

	_, err = tx.Exec(ctx,
		`UPDATE books SET average_rating = $2, total_reviews = $3, updated_at = NOW() WHERE id = $1`,
		bookID, avg, count,
	)
	if err != nil {
		return fmt.Errorf("failed to update book stats: %w", err)
	}

	return nil
}
