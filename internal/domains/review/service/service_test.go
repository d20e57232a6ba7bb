package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/infrastructure/ai"
	"bookreview-backend/pkg/cache"
)

// =====================================================
// FAKES
// =====================================================

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*model.Review{}}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	for _, r := range f.reviews {
		if r.BookID == review.BookID && r.UserID == review.UserID {
			return model.ErrAlreadyReviewed
		}
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*model.Review, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.BookID == bookID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, model.ErrReviewNotFound
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *model.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return model.ErrReviewNotFound
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) UpdateAISummary(ctx context.Context, id uuid.UUID, summary string) error {
	r, ok := f.reviews[id]
	if !ok {
		return model.ErrReviewNotFound
	}
	r.AISummary = &summary
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return model.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) List(ctx context.Context, req model.ListReviewsRequest) ([]model.Review, int, error) {
	out := []model.Review{}
	for _, r := range f.reviews {
		if req.BookID != nil && r.BookID != *req.BookID {
			continue
		}
		if req.UserID != nil && r.UserID != *req.UserID {
			continue
		}
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error) {
	out := []model.Review{}
	for _, r := range f.reviews {
		if r.BookID == bookID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// brokenCache fails every operation, như khi Redis down
type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, errors.New("connection refused")
}
func (brokenCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("connection refused")
}
func (brokenCache) Delete(ctx context.Context, keys ...string) error {
	return errors.New("connection refused")
}
func (brokenCache) DeletePattern(ctx context.Context, pattern string) error {
	return errors.New("connection refused")
}
func (brokenCache) Ping(ctx context.Context) error { return errors.New("connection refused") }
func (brokenCache) Stats(ctx context.Context) (cache.Stats, error) {
	return cache.Stats{}, errors.New("connection refused")
}

type offlineAI struct{}

func (offlineAI) Configured() bool { return false }
func (offlineAI) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", errors.New("not configured")
}

func newTestService(repo *fakeReviewRepo) ServiceInterface {
	return NewReviewService(repo, brokenCache{}, ai.NewSummarizer(offlineAI{}))
}

// =====================================================
// TESTS
// =====================================================

func TestCreateReview(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestService(repo)
	userID := uuid.New()
	bookID := uuid.New()

	resp, err := svc.CreateReview(context.Background(), userID, model.CreateReviewRequest{
		BookID:  bookID,
		Rating:  4.5,
		Content: "Loved it.",
	})
	require.NoError(t, err)
	assert.Equal(t, bookID, resp.BookID)
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, 4.5, resp.Rating)
}

func TestCreateReviewDuplicate(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestService(repo)
	userID := uuid.New()
	bookID := uuid.New()

	_, err := svc.CreateReview(context.Background(), userID, model.CreateReviewRequest{
		BookID: bookID, Rating: 4.0,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), userID, model.CreateReviewRequest{
		BookID: bookID, Rating: 5.0,
	})
	require.Error(t, err)

	var reviewErr *model.ReviewError
	require.ErrorAs(t, err, &reviewErr)
	assert.Equal(t, model.ErrCodeAlreadyReviewed, reviewErr.Code)
}

func TestCreateReviewInvalidRating(t *testing.T) {
	svc := newTestService(newFakeReviewRepo())

	for _, rating := range []float64{0.5, 5.5, -1.0} {
		_, err := svc.CreateReview(context.Background(), uuid.New(), model.CreateReviewRequest{
			BookID: uuid.New(), Rating: rating,
		})
		require.Error(t, err, "rating %v must be rejected", rating)

		var reviewErr *model.ReviewError
		require.ErrorAs(t, err, &reviewErr)
		assert.Equal(t, model.ErrCodeInvalidInput, reviewErr.Code)
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestService(repo)
	owner := uuid.New()
	other := uuid.New()

	created, err := svc.CreateReview(context.Background(), owner, model.CreateReviewRequest{
		BookID: uuid.New(), Rating: 3.0,
	})
	require.NoError(t, err)

	newRating := 4.0
	_, err = svc.UpdateReview(context.Background(), other, false, created.ID, model.UpdateReviewRequest{Rating: &newRating})
	require.Error(t, err)

	var reviewErr *model.ReviewError
	require.ErrorAs(t, err, &reviewErr)
	assert.Equal(t, model.ErrCodeUnauthorized, reviewErr.Code)

	// Admin bypasses ownership
	updated, err := svc.UpdateReview(context.Background(), other, true, created.ID, model.UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.Rating)
}

func TestUpdateReviewContentClearsStaleSummary(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateReview(context.Background(), owner, model.CreateReviewRequest{
		BookID: uuid.New(), Rating: 3.0, Content: "Original text.",
	})
	require.NoError(t, err)

	stale := "stale summary"
	require.NoError(t, repo.UpdateAISummary(context.Background(), created.ID, stale))

	newContent := "Completely rewritten."
	updated, err := svc.UpdateReview(context.Background(), owner, false, created.ID, model.UpdateReviewRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Nil(t, updated.AISummary)
}

func TestDeleteReviewNotFound(t *testing.T) {
	svc := newTestService(newFakeReviewRepo())

	err := svc.DeleteReview(context.Background(), uuid.New(), false, uuid.New())
	require.Error(t, err)

	var reviewErr *model.ReviewError
	require.ErrorAs(t, err, &reviewErr)
	assert.Equal(t, model.ErrCodeReviewNotFound, reviewErr.Code)
}

// Mutations phải succeed cả khi cache backend chết hoàn toàn
func TestMutationsSucceedWithBrokenCache(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateReview(context.Background(), owner, model.CreateReviewRequest{
		BookID: uuid.New(), Rating: 5.0,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), owner, false, created.ID))
}

func TestBookReviewsSummaryEmpty(t *testing.T) {
	svc := newTestService(newFakeReviewRepo())

	resp, err := svc.BookReviewsSummary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalReviews)
	assert.NotEmpty(t, resp.Summary)
}

func TestBookReviewsSummaryDigest(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestService(repo)
	bookID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateReview(context.Background(), uuid.New(), model.CreateReviewRequest{
			BookID:  bookID,
			Rating:  4.0,
			Content: "A thoughtful take on the plot and characters.",
		})
		require.NoError(t, err)
	}

	resp, err := svc.BookReviewsSummary(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalReviews)
	assert.NotEmpty(t, resp.Summary)
}
