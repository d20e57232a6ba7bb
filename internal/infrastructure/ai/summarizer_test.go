package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/config"
)

type stubClient struct {
	configured bool
	result     string
	err        error
}

func (s *stubClient) Configured() bool { return s.configured }

func (s *stubClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return s.result, s.err
}

func TestSummarizeUnconfiguredFallsBack(t *testing.T) {
	s := NewSummarizer(&stubClient{configured: false})

	long := strings.Repeat("a", FallbackBudget+50)
	got := s.Summarize(context.Background(), long)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, FallbackBudget+3, len(got))
}

func TestSummarizeShortTextReturnedVerbatim(t *testing.T) {
	s := NewSummarizer(&stubClient{configured: false})

	got := s.Summarize(context.Background(), "A short description.")
	assert.Equal(t, "A short description.", got)
}

func TestSummarizeErrorFallsBack(t *testing.T) {
	s := NewSummarizer(&stubClient{configured: true, err: assert.AnError})

	got := s.Summarize(context.Background(), "Some book description worth summarizing.")
	assert.Equal(t, "Some book description worth summarizing.", got)
}

func TestSummarizeBlankResultFallsBack(t *testing.T) {
	s := NewSummarizer(&stubClient{configured: true, result: ""})

	got := s.Summarize(context.Background(), "Content here.")
	assert.NotEmpty(t, got)
	assert.Equal(t, "Content here.", got)
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := NewSummarizer(&stubClient{configured: true, result: "irrelevant"})

	got := s.Summarize(context.Background(), "   ")
	assert.Equal(t, "No content provided to summarize.", got)
}

func TestRecommendationReasoningFallback(t *testing.T) {
	s := NewSummarizer(&stubClient{configured: true, err: assert.AnError})

	got := s.RecommendationReasoning(context.Background(), "Fiction, Mystery", "1. Dune")
	assert.Equal(t, "Based on your preferences, these books are recommended for you.", got)
}

func TestOpenRouterClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  A fine summary.  "}}]}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient(config.AIConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})

	require.True(t, client.Configured())

	got, err := client.Complete(context.Background(), "summarize this", 150)
	require.NoError(t, err)
	assert.Equal(t, "A fine summary.", got)
}

func TestOpenRouterClientNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenRouterClient(config.AIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})

	_, err := client.Complete(context.Background(), "x", 10)
	assert.Error(t, err)
}

func TestOpenRouterClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient(config.AIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})

	_, err := client.Complete(context.Background(), "x", 10)
	assert.Error(t, err)
}

func TestFallbackSummaryTrimsTrailingSpace(t *testing.T) {
	text := strings.Repeat("word ", 100) // 500 chars, cut lands after "word"
	got := FallbackSummary(text)
	assert.False(t, strings.Contains(got, " ..."))
	assert.True(t, strings.HasSuffix(got, "..."))
}
