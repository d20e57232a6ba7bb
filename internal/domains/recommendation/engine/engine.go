package engine

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// =====================================================
// RANKING ENGINE
// =====================================================
// Pure in-memory ranking: không I/O, không randomness, cùng input
// luôn cho cùng output. Service layer lo chuyện load data và cache.

const (
	// DefaultLimit là số kết quả mặc định
	DefaultLimit = 5

	// priorWeight (m) và priorMean: Bayesian smoothing kéo books ít
	// reviews về prior. Một review 5.0 không thắng nổi trăm review 4.5.
	priorWeight = 5
	priorMean   = 3.0
)

// Candidate là ranking view của một book
type Candidate struct {
	ID            uuid.UUID
	Genres        []string // normalized genre set
	AverageRating float64
	TotalReviews  int
}

// SplitGenres derives the normalized genre set from a display string.
// "Science Fiction/Adventure" và "science fiction, adventure" cho cùng set.
func SplitGenres(genre string) []string {
	fields := strings.FieldsFunc(genre, func(r rune) bool {
		return r == '/' || r == ','
	})

	seen := map[string]bool{}
	out := []string{}
	for _, f := range fields {
		g := strings.ToLower(strings.TrimSpace(f))
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// PopularityScore computes the Bayesian average for a book
func PopularityScore(avg float64, totalReviews int) float64 {
	n := float64(totalReviews)
	m := float64(priorWeight)
	return (n/(n+m))*avg + (m/(n+m))*priorMean
}

// HasGenre checks membership in the normalized genre set
func HasGenre(genres []string, genre string) bool {
	want := strings.ToLower(strings.TrimSpace(genre))
	for _, g := range genres {
		if g == want {
			return true
		}
	}
	return false
}

// Jaccard computes set overlap of two genre sets: |A∩B| / |A∪B|.
// Hai set rỗng cho 0, không phải NaN.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := map[string]bool{}
	for _, g := range a {
		setA[g] = true
	}

	union := len(setA)
	intersection := 0
	seenB := map[string]bool{}
	for _, g := range b {
		if seenB[g] {
			continue
		}
		seenB[g] = true
		if setA[g] {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

type scored struct {
	candidate Candidate
	score     float64
}

// sortScored sorts score desc, total_reviews desc, id asc.
// Tie-break bằng id giữ output ổn định giữa các lần gọi.
func sortScored(items []scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		if items[i].candidate.TotalReviews != items[j].candidate.TotalReviews {
			return items[i].candidate.TotalReviews > items[j].candidate.TotalReviews
		}
		return items[i].candidate.ID.String() < items[j].candidate.ID.String()
	})
}

// RankByPopularity ranks candidates by Bayesian popularity.
// genre != "" lọc theo normalized genre set trước khi rank.
func RankByPopularity(candidates []Candidate, genre string, limit int) []Candidate {
	if limit < 1 {
		limit = DefaultLimit
	}

	items := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if genre != "" && !HasGenre(c.Genres, genre) {
			continue
		}
		items = append(items, scored{candidate: c, score: PopularityScore(c.AverageRating, c.TotalReviews)})
	}

	sortScored(items)

	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, it.candidate)
	}
	return out
}

// RankBySimilarity ranks candidates by genre-set overlap with refGenres.
// Reference book luôn bị loại khỏi kết quả.
func RankBySimilarity(refGenres []string, candidates []Candidate, excludeID uuid.UUID, limit int) []Candidate {
	if limit < 1 {
		limit = DefaultLimit
	}

	items := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == excludeID {
			continue
		}
		items = append(items, scored{candidate: c, score: Jaccard(refGenres, c.Genres)})
	}

	sortScored(items)

	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, it.candidate)
	}
	return out
}
