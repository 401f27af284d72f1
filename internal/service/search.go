package service

import (
	"sort"
	"strings"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/text"
)

// defaultSimilarity is the lowest similarity a fuzzy search hit may have.
const defaultSimilarity = 0.7

// WordMatcher ranks vocabulary entries against a free-form query,
// typed in Arabic, in English or in transliteration.
type WordMatcher struct {
	threshold float64 // similarity threshold (0.0 - 1.0)
}

func NewWordMatcher() *WordMatcher {
	return &WordMatcher{threshold: defaultSimilarity}
}

type match struct {
	word  *entities.Word
	score float64
}

// Match returns up to limit words ordered by similarity to query.
// Exact and prefix matches always rank above fuzzy ones.
func (m *WordMatcher) Match(query string, words []*entities.Word, limit int) []*entities.Word {
	q := normalizeQuery(query)
	if q == "" || limit <= 0 {
		return nil
	}

	arabic := text.IsArabic(q)

	var hits []match
	for _, w := range words {
		fields := []string{w.English, w.Transliteration}
		if arabic {
			fields = []string{w.Arabic}
		}

		var best float64
		for _, f := range fields {
			best = max(best, m.score(q, normalizeQuery(f)))
		}
		if best == 0 {
			continue
		}
		hits = append(hits, match{word: w, score: best})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := make([]*entities.Word, 0, min(limit, len(hits)))
	for _, h := range takeFirst(hits, limit) {
		out = append(out, h.word)
	}
	return out
}

// score rates one field against the query, 0 meaning no match.
func (m *WordMatcher) score(q, field string) float64 {
	switch {
	case field == "":
		return 0
	case field == q:
		return 3
	case strings.HasPrefix(field, q):
		return 2
	}

	if sim := similarity(q, field); sim >= m.threshold {
		return sim
	}
	return 0
}

// normalizeQuery lowercases, folds Arabic spelling variants and collapses whitespace.
func normalizeQuery(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = text.Normalize(s)
	return strings.Join(strings.Fields(s), " ")
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
