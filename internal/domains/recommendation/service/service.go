package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookmodel "bookreview-backend/internal/domains/book/model"
	bookrepo "bookreview-backend/internal/domains/book/repository"
	"bookreview-backend/internal/domains/recommendation/engine"
	usermodel "bookreview-backend/internal/domains/user/model"
	userrepo "bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/internal/infrastructure/ai"
	"bookreview-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

// TTLs per result kind. Personalized ngắn nhất vì phụ thuộc user state.
const (
	recommendationTTL = 60 * time.Second
	popularTTL        = 120 * time.Second
	similarTTL        = 180 * time.Second
	summaryTTL        = 300 * time.Second
)

const maxLimit = 50

type recommendationService struct {
	bookRepo   bookrepo.BookRepository
	userRepo   userrepo.UserRepository
	cache      cache.Cache
	summarizer *ai.Summarizer
}

func NewRecommendationService(
	bookRepo bookrepo.BookRepository,
	userRepo userrepo.UserRepository,
	cacheClient cache.Cache,
	summarizer *ai.Summarizer,
) ServiceInterface {
	return &recommendationService{
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		cache:      cacheClient,
		summarizer: summarizer,
	}
}

func clampLimit(limit int) int {
	if limit < 1 {
		return engine.DefaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// toCandidates maps books sang ranking view của engine
func toCandidates(books []bookmodel.Book) []engine.Candidate {
	out := make([]engine.Candidate, 0, len(books))
	for i := range books {
		out = append(out, engine.Candidate{
			ID:            books[i].ID,
			Genres:        engine.SplitGenres(books[i].Genre),
			AverageRating: books[i].AverageRating,
			TotalReviews:  books[i].TotalReviews,
		})
	}
	return out
}

// pickRanked resolves ranked candidates back to book responses
func pickRanked(books []bookmodel.Book, ranked []engine.Candidate) []bookmodel.BookResponse {
	byID := make(map[uuid.UUID]*bookmodel.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	out := make([]bookmodel.BookResponse, 0, len(ranked))
	for _, c := range ranked {
		if b, ok := byID[c.ID]; ok {
			out = append(out, bookmodel.ToResponse(b))
		}
	}
	return out
}

// =====================================================
// PERSONALIZED RECOMMENDATIONS
// =====================================================

func (s *recommendationService) Recommend(ctx context.Context, userID uuid.UUID, genre string, count int) (*RecommendationResponse, error) {
	count = clampLimit(count)
	key := fmt.Sprintf("rec:%s:%s:%d", userID, normalizeKeyPart(genre), count)

	var cached RecommendationResponse
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return &cached, nil
	}

	// Step 1: Load user preferences
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == usermodel.ErrUserNotFound {
			return nil, usermodel.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Step 2: Load ranking snapshot
	books, err := s.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	candidates := toCandidates(books)

	// Step 3: Rank
	// Explicit genre filter thắng preferences; nếu không thì match theo
	// preferred genre set, popularity làm fallback khi user chưa có preferences
	preferred := normalizeGenres(user.PreferredGenres)
	var ranked []engine.Candidate
	switch {
	case genre != "":
		ranked = engine.RankByPopularity(candidates, genre, count)
	case len(preferred) > 0:
		ranked = engine.RankBySimilarity(preferred, candidates, uuid.Nil, count)
	default:
		ranked = engine.RankByPopularity(candidates, "", count)
	}

	result := pickRanked(books, ranked)

	// Step 4: AI reasoning (total, degrades to canned text)
	reasoning := s.summarizer.RecommendationReasoning(ctx,
		describePreferences(user, genre),
		describeBooks(result),
	)

	response := &RecommendationResponse{
		Books:     result,
		Reasoning: reasoning,
		BasedOn:   user.PreferredGenres,
	}

	s.cacheSet(ctx, key, response, recommendationTTL)
	return response, nil
}

// =====================================================
// POPULAR BOOKS
// =====================================================

func (s *recommendationService) Popular(ctx context.Context, genre string, limit int) ([]bookmodel.BookResponse, error) {
	limit = clampLimit(limit)
	key := fmt.Sprintf("popular:%s:%d", normalizeKeyPart(genre), limit)

	var cached []bookmodel.BookResponse
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return cached, nil
	}

	books, err := s.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	ranked := engine.RankByPopularity(toCandidates(books), genre, limit)
	result := pickRanked(books, ranked)

	s.cacheSet(ctx, key, result, popularTTL)
	return result, nil
}

// =====================================================
// SIMILAR BOOKS
// =====================================================

func (s *recommendationService) Similar(ctx context.Context, bookID uuid.UUID, limit int) ([]bookmodel.BookResponse, error) {
	limit = clampLimit(limit)
	key := fmt.Sprintf("similar:%s:%d", bookID, limit)

	var cached []bookmodel.BookResponse
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return cached, nil
	}

	// Step 1: Load reference book
	ref, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if err == bookmodel.ErrBookNotFound {
			return nil, bookmodel.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	// Step 2: Rank by genre overlap
	books, err := s.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	ranked := engine.RankBySimilarity(engine.SplitGenres(ref.Genre), toCandidates(books), ref.ID, limit)
	result := pickRanked(books, ranked)

	s.cacheSet(ctx, key, result, similarTTL)
	return result, nil
}

// =====================================================
// AD-HOC CONTENT SUMMARY
// =====================================================

func (s *recommendationService) GenerateSummary(ctx context.Context, content string) (*ContentSummaryResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, bookmodel.NewInvalidInputError(fmt.Errorf("content is required"))
	}

	// Dedupe identical content qua hash key
	sum := sha256.Sum256([]byte(content))
	key := "summary:" + hex.EncodeToString(sum[:])

	var cached string
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return &ContentSummaryResponse{Summary: cached, ContentLength: len(content)}, nil
	}

	summary := s.summarizer.Summarize(ctx, content)
	s.cacheSet(ctx, key, summary, summaryTTL)

	return &ContentSummaryResponse{Summary: summary, ContentLength: len(content)}, nil
}

// =====================================================
// CACHE ADMINISTRATION
// =====================================================

func (s *recommendationService) CacheStats(ctx context.Context) (cache.Stats, error) {
	return s.cache.Stats(ctx)
}

func (s *recommendationService) ClearCache(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, "*")
}

// =====================================================
// HELPERS
// =====================================================

// cacheSet is best-effort: set failure chỉ log
func (s *recommendationService) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("failed to cache result")
	}
}

func normalizeKeyPart(genre string) string {
	g := strings.ToLower(strings.TrimSpace(genre))
	if g == "" {
		return "all"
	}
	return strings.ReplaceAll(g, " ", "_")
}

func normalizeGenres(genres []string) []string {
	out := []string{}
	for _, g := range genres {
		for _, split := range engine.SplitGenres(g) {
			out = append(out, split)
		}
	}
	return out
}

func describePreferences(user *usermodel.User, genre string) string {
	if genre != "" {
		return "Requested genre: " + genre
	}
	if len(user.PreferredGenres) == 0 {
		return "No stated preferences, showing popular books"
	}
	return "Preferred genres: " + strings.Join(user.PreferredGenres, ", ")
}

func describeBooks(books []bookmodel.BookResponse) string {
	var sb strings.Builder
	for i, b := range books {
		fmt.Fprintf(&sb, "%d. %q by %s (%s, rated %.1f from %d reviews)\n",
			i+1, b.Title, b.Author, b.Genre, b.AverageRating, b.TotalReviews)
	}
	return sb.String()
}
