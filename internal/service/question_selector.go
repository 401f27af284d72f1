package service

import (
	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

// SelectQuizPool filters candidate words down to the ones eligible for practice.
// With excludeMastered set, words isMastered reports true for are removed.
// Duplicates and nil entries are dropped, order is kept.
func SelectQuizPool(
	words []*entities.Word,
	isMastered func(wordID string) bool,
	excludeMastered bool,
) []*entities.Word {
	out := make([]*entities.Word, 0, len(words))
	for _, w := range uniqueWords(words) {
		if excludeMastered && isMastered != nil && isMastered(w.ID) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// shuffled returns a shuffled copy. Caller must hold g.mu.
func (g *QuizGenerator) shuffled(words []*entities.Word) []*entities.Word {
	cp := append([]*entities.Word(nil), words...)
	g.rng.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	return cp
}

// uniqueWords removes nil entries and repeated IDs, keeping the first occurrence.
func uniqueWords(words []*entities.Word) []*entities.Word {
	seen := make(map[string]struct{}, len(words))
	out := make([]*entities.Word, 0, len(words))
	for _, w := range words {
		if w == nil {
			continue
		}
		if _, ok := seen[w.ID]; ok {
			continue
		}
		seen[w.ID] = struct{}{}
		out = append(out, w)
	}
	return out
}

// takeFirst returns at most n leading elements.
func takeFirst[T any](in []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(in) <= n {
		return in
	}
	return in[:n]
}
