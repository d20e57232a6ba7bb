package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/infrastructure/ai"
	infracache "bookreview-backend/internal/infrastructure/cache"
	"bookreview-backend/pkg/cache"
)

// =====================================================
// FAKES
// =====================================================

type fakeBookRepo struct {
	books map[uuid.UUID]*model.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uuid.UUID]*model.Book{}}
}

func (f *fakeBookRepo) Create(ctx context.Context, book *model.Book) error {
	cp := *book
	f.books[book.ID] = &cp
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, book *model.Book) error {
	if _, ok := f.books[book.ID]; !ok {
		return model.ErrBookNotFound
	}
	cp := *book
	f.books[book.ID] = &cp
	return nil
}

func (f *fakeBookRepo) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	b, ok := f.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	b.Summary = &summary
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) List(ctx context.Context, req model.ListBooksRequest) ([]model.Book, int, error) {
	out := make([]model.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (f *fakeBookRepo) ListAll(ctx context.Context) ([]model.Book, error) {
	out, _, _ := f.List(ctx, model.ListBooksRequest{})
	return out, nil
}

type offlineAI struct{}

func (offlineAI) Configured() bool { return false }
func (offlineAI) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", errors.New("not configured")
}

// countingAI trả cùng một summary và đếm số lần gọi upstream
type countingAI struct {
	calls int
}

func (c *countingAI) Configured() bool { return true }
func (c *countingAI) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	c.calls++
	return "A concise machine-written summary.", nil
}

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

func newTestService(repo *fakeBookRepo) ServiceInterface {
	return NewBookService(repo, infracache.NewMemoryCache(), ai.NewSummarizer(offlineAI{}))
}

// =====================================================
// TESTS
// =====================================================

func TestCreateBook(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestService(repo)

	year := 1965
	resp, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genre:         "Science Fiction",
		YearPublished: &year,
		Description:   "Desert planet politics.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.Title)
	assert.Equal(t, 0.0, resp.AverageRating)
	assert.Equal(t, 0, resp.TotalReviews)
	assert.Len(t, repo.books, 1)
}

func TestCreateBookValidation(t *testing.T) {
	svc := newTestService(newFakeBookRepo())

	futureYear := time.Now().Year() + 10
	cases := []struct {
		name string
		req  model.CreateBookRequest
	}{
		{"missing title", model.CreateBookRequest{Author: "X"}},
		{"missing author", model.CreateBookRequest{Title: "X"}},
		{"year too far in future", model.CreateBookRequest{Title: "X", Author: "Y", YearPublished: &futureYear}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBook(context.Background(), tc.req)
			require.Error(t, err)

			var bookErr *model.BookError
			require.ErrorAs(t, err, &bookErr)
			assert.Equal(t, model.ErrCodeInvalidInput, bookErr.Code)
		})
	}
}

func TestGetBookNotFound(t *testing.T) {
	svc := newTestService(newFakeBookRepo())

	_, err := svc.GetBook(context.Background(), uuid.New())
	require.Error(t, err)

	var bookErr *model.BookError
	require.ErrorAs(t, err, &bookErr)
	assert.Equal(t, model.ErrCodeBookNotFound, bookErr.Code)
}

func TestUpdateBookPartial(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestService(repo)

	created, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
		Genre:  "Science Fiction",
	})
	require.NoError(t, err)

	newGenre := "Science Fiction/Adventure"
	updated, err := svc.UpdateBook(context.Background(), created.ID, model.UpdateBookRequest{Genre: &newGenre})
	require.NoError(t, err)
	assert.Equal(t, newGenre, updated.Genre)
	// Untouched fields survive
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "Frank Herbert", updated.Author)
}

func TestUpdateBookEmptyRequestIsNoop(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestService(repo)

	created, err := svc.CreateBook(context.Background(), model.CreateBookRequest{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), created.ID, model.UpdateBookRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
}

func TestDeleteBookNotFound(t *testing.T) {
	svc := newTestService(newFakeBookRepo())

	err := svc.DeleteBook(context.Background(), uuid.New())
	require.Error(t, err)

	var bookErr *model.BookError
	assert.ErrorAs(t, err, &bookErr)
}

func TestGenerateSummaryFallbackPersists(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestService(repo)

	created, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Desert planet politics.",
	})
	require.NoError(t, err)

	resp, err := svc.GenerateSummary(context.Background(), created.ID)
	require.NoError(t, err)
	// Upstream offline → truncation fallback, vẫn trả summary hợp lệ
	assert.Equal(t, "Desert planet politics.", resp.Summary)

	stored := repo.books[created.ID]
	require.NotNil(t, stored.Summary)
	assert.Equal(t, resp.Summary, *stored.Summary)
}

func TestGetSummaryGeneratesLazily(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestService(repo)

	created, err := svc.CreateBook(context.Background(), model.CreateBookRequest{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	resp, err := svc.GetSummary(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, resp.HasAISummary)
	// No description → summarize "Title by Author"
	assert.Equal(t, "Dune by Frank Herbert", resp.Summary)

	// Persisted, second call serves the stored copy
	stored := repo.books[created.ID]
	require.NotNil(t, stored.Summary)
}

func TestSummaryDedupesIdenticalContent(t *testing.T) {
	repo := newFakeBookRepo()
	client := &countingAI{}
	svc := NewBookService(repo, infracache.NewMemoryCache(), ai.NewSummarizer(client))

	created, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Desert planet politics.",
	})
	require.NoError(t, err)

	_, err = svc.GenerateSummary(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = svc.GenerateSummary(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls, "identical content must hit the summary cache")
}

func TestMutationsSucceedWithBrokenCache(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo, brokenCache{}, ai.NewSummarizer(offlineAI{}))

	created, err := svc.CreateBook(context.Background(), model.CreateBookRequest{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	newTitle := "Dune Messiah"
	_, err = svc.UpdateBook(context.Background(), created.ID, model.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	_, err = svc.GenerateSummary(context.Background(), created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(context.Background(), created.ID))
}
