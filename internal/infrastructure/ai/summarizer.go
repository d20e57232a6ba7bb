package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	// FallbackBudget là character budget cho deterministic fallback summary
	FallbackBudget = 300

	summaryMaxLen   = 500
	reasoningMaxLen = 300
)

// Summarizer bọc completion client thành một TOTAL function:
// Summarize luôn trả về non-empty string cho non-empty input,
// bất kể external service có available hay không.
//
// Degrade path: unconfigured key → fallback ngay (không network call);
// call error / timeout / blank response → log rồi fallback.
// AI unavailability KHÔNG BAO GIỜ surface lên caller như error.
type Summarizer struct {
	client Client
}

func NewSummarizer(client Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize trả về 2-3 câu tóm tắt của text
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "No content provided to summarize."
	}

	if !s.client.Configured() {
		return FallbackSummary(text)
	}

	prompt := fmt.Sprintf(
		"Please provide a concise 2-3 sentence summary of the following text:\n\n%s",
		truncate(text, 2000),
	)

	result, err := s.client.Complete(ctx, prompt, 150)
	if err != nil {
		log.Warn().Err(err).Msg("AI summary failed, using fallback")
		return FallbackSummary(text)
	}
	if result == "" {
		log.Warn().Msg("AI summary returned empty result, using fallback")
		return FallbackSummary(text)
	}

	return truncate(result, summaryMaxLen)
}

// RecommendationReasoning sinh lời giải thích vì sao các books match user preferences
func (s *Summarizer) RecommendationReasoning(ctx context.Context, userContext, booksContext string) string {
	const fallback = "Based on your preferences, these books are recommended for you."

	if !s.client.Configured() {
		return fallback
	}

	prompt := fmt.Sprintf(
		"Based on the user preferences and available books below, explain why these books are good recommendations:\n\n"+
			"User Preferences: %s\n\nAvailable Books:\n%s\n\n"+
			"Please provide a brief, engaging explanation of why these books match the user's interests.",
		userContext,
		truncate(booksContext, 800),
	)

	result, err := s.client.Complete(ctx, prompt, 200)
	if err != nil || result == "" {
		if err != nil {
			log.Warn().Err(err).Msg("AI reasoning failed, using fallback")
		}
		return fallback
	}

	return truncate(result, reasoningMaxLen)
}

// FallbackSummary là deterministic degraded path: truncate về character
// budget cố định và append ellipsis marker. Không bao giờ fail.
func FallbackSummary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Summary not available."
	}

	if utf8.RuneCountInString(text) <= FallbackBudget {
		return text
	}

	runes := []rune(text)
	clipped := strings.TrimRight(string(runes[:FallbackBudget]), " \t\n")
	return clipped + "..."
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
