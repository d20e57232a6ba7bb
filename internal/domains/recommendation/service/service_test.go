package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "bookreview-backend/internal/domains/book/model"
	usermodel "bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/infrastructure/ai"
	infracache "bookreview-backend/internal/infrastructure/cache"
	"bookreview-backend/pkg/cache"
)

// =====================================================
// FAKES
// =====================================================

type fakeBookRepo struct {
	books    []bookmodel.Book
	listHits int
}

func (f *fakeBookRepo) Create(ctx context.Context, book *bookmodel.Book) error { return nil }

func (f *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	for i := range f.books {
		if f.books[i].ID == id {
			cp := f.books[i]
			return &cp, nil
		}
	}
	return nil, bookmodel.ErrBookNotFound
}

func (f *fakeBookRepo) Update(ctx context.Context, book *bookmodel.Book) error { return nil }
func (f *fakeBookRepo) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return nil
}
func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeBookRepo) List(ctx context.Context, req bookmodel.ListBooksRequest) ([]bookmodel.Book, int, error) {
	return f.books, len(f.books), nil
}

func (f *fakeBookRepo) ListAll(ctx context.Context) ([]bookmodel.Book, error) {
	f.listHits++
	return f.books, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*usermodel.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *usermodel.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*usermodel.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, usermodel.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	return nil, usermodel.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	return nil, usermodel.ErrUserNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, user *usermodel.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }
func (f *fakeUserRepo) List(ctx context.Context, req usermodel.ListUsersRequest) ([]usermodel.User, int, error) {
	return nil, 0, nil
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

func makeBook(title, genre string, avg float64, total int) bookmodel.Book {
	return bookmodel.Book{
		ID:            uuid.New(),
		Title:         title,
		Author:        "Author",
		Genre:         genre,
		AverageRating: avg,
		TotalReviews:  total,
	}
}

// =====================================================
// TESTS
// =====================================================

func TestPopularUsesCache(t *testing.T) {
	repo := &fakeBookRepo{books: []bookmodel.Book{
		makeBook("A", "Fiction", 4.5, 100),
		makeBook("B", "Fiction", 5.0, 1),
	}}
	svc := NewRecommendationService(repo, &fakeUserRepo{}, infracache.NewMemoryCache(), ai.NewSummarizer(offlineAI{}))

	first, err := svc.Popular(context.Background(), "", 5)
	require.NoError(t, err)
	require.Len(t, first, 2)
	// Bayesian: trăm review 4.5 thắng một review 5.0
	assert.Equal(t, "A", first[0].Title)

	second, err := svc.Popular(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listHits, "second call must be served from cache")
}

// Ranking phải hoạt động y hệt khi cache backend chết hoàn toàn
func TestPopularDegradesWithBrokenCache(t *testing.T) {
	repo := &fakeBookRepo{books: []bookmodel.Book{
		makeBook("A", "Fiction", 4.5, 100),
		makeBook("B", "Romance", 4.0, 50),
	}}
	svc := NewRecommendationService(repo, &fakeUserRepo{}, brokenCache{}, ai.NewSummarizer(offlineAI{}))

	result, err := svc.Popular(context.Background(), "", 5)
	require.NoError(t, err)
	require.Len(t, result, 2)

	_, err = svc.Popular(context.Background(), "fiction", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listHits, "every call goes direct when cache is down")
}

func TestRecommendUsesPreferredGenres(t *testing.T) {
	sciFi := makeBook("Dune", "Science Fiction", 4.5, 80)
	romance := makeBook("Meet Cute", "Romance", 4.9, 200)
	repo := &fakeBookRepo{books: []bookmodel.Book{romance, sciFi}}

	userID := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*usermodel.User{
		userID: {ID: userID, Username: "reader", PreferredGenres: []string{"Science Fiction"}},
	}}

	svc := NewRecommendationService(repo, users, infracache.NewMemoryCache(), ai.NewSummarizer(offlineAI{}))

	resp, err := svc.Recommend(context.Background(), userID, "", 5)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Books)
	assert.Equal(t, "Dune", resp.Books[0].Title)
	assert.NotEmpty(t, resp.Reasoning)
	assert.Equal(t, []string{"Science Fiction"}, resp.BasedOn)
}

func TestRecommendUnknownUser(t *testing.T) {
	svc := NewRecommendationService(&fakeBookRepo{}, &fakeUserRepo{users: map[uuid.UUID]*usermodel.User{}}, infracache.NewMemoryCache(), ai.NewSummarizer(offlineAI{}))

	_, err := svc.Recommend(context.Background(), uuid.New(), "", 5)
	require.Error(t, err)

	var userErr *usermodel.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestSimilarExcludesReference(t *testing.T) {
	ref := makeBook("Dune", "Science Fiction/Adventure", 4.5, 80)
	near := makeBook("Foundation", "Science Fiction", 4.4, 60)
	far := makeBook("Meet Cute", "Romance", 4.9, 200)
	repo := &fakeBookRepo{books: []bookmodel.Book{ref, near, far}}

	svc := NewRecommendationService(repo, &fakeUserRepo{}, infracache.NewMemoryCache(), ai.NewSummarizer(offlineAI{}))

	result, err := svc.Similar(context.Background(), ref.ID, 5)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Foundation", result[0].Title)
	for _, b := range result {
		assert.NotEqual(t, ref.ID, b.ID)
	}
}

func TestSimilarUnknownBook(t *testing.T) {
	svc := NewRecommendationService(&fakeBookRepo{}, &fakeUserRepo{}, infracache.NewMemoryCache(), ai.NewSummarizer(offlineAI{}))

	_, err := svc.Similar(context.Background(), uuid.New(), 5)
	require.Error(t, err)

	var bookErr *bookmodel.BookError
	assert.ErrorAs(t, err, &bookErr)
}

func TestGenerateSummaryFallback(t *testing.T) {
	svc := NewRecommendationService(&fakeBookRepo{}, &fakeUserRepo{}, infracache.NewMemoryCache(), ai.NewSummarizer(offlineAI{}))

	resp, err := svc.GenerateSummary(context.Background(), "Some book content to summarize.")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Summary)
	assert.Equal(t, len("Some book content to summarize."), resp.ContentLength)

	_, err = svc.GenerateSummary(context.Background(), "   ")
	require.Error(t, err)
}

func TestCacheStatsAndClear(t *testing.T) {
	mem := infracache.NewMemoryCache()
	repo := &fakeBookRepo{books: []bookmodel.Book{makeBook("A", "Fiction", 4.0, 10)}}
	svc := NewRecommendationService(repo, &fakeUserRepo{}, mem, ai.NewSummarizer(offlineAI{}))

	_, err := svc.Popular(context.Background(), "", 5)
	require.NoError(t, err)

	stats, err := svc.CacheStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Keys)

	require.NoError(t, svc.ClearCache(context.Background()))

	stats, err = svc.CacheStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Keys)
}
