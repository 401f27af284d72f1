package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/text"
)

var (
	ErrWordNotFound = errors.New("word not found")
	ErrDuplicateID  = errors.New("duplicate id")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Clitics stripped from story words when the exact form has no entry.
// Longer prefixes go first.
var arabicPrefixes = []string{"وال", "بال", "فال", "كال", "لل", "ال", "و", "ف", "ب"}

// WordRepository provides access to the bundled vocabulary.
type WordRepository struct {
	words    []*entities.Word
	byID     map[string]*entities.Word
	byArabic map[string]*entities.Word // keyed by text.Normalize
}

// NewWordRepository loads and validates the vocabulary file.
func NewWordRepository(path string) (*WordRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Words []*entities.Word `json:"words"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal words JSON: %w", err)
	}

	return newWordRepository(wrapper.Words)
}

func newWordRepository(words []*entities.Word) (*WordRepository, error) {
	r := &WordRepository{
		words:    make([]*entities.Word, 0, len(words)),
		byID:     make(map[string]*entities.Word, len(words)),
		byArabic: make(map[string]*entities.Word, len(words)),
	}

	for i, w := range words {
		if w == nil {
			return nil, fmt.Errorf("word #%d is null", i)
		}
		if err := validate.Struct(w); err != nil {
			return nil, fmt.Errorf("word #%d (%s): %w", i, w.ID, err)
		}
		if _, ok := r.byID[w.ID]; ok {
			return nil, fmt.Errorf("word %s: %w", w.ID, ErrDuplicateID)
		}

		r.words = append(r.words, w)
		r.byID[w.ID] = w

		key := text.Normalize(w.Arabic)
		if _, ok := r.byArabic[key]; !ok {
			r.byArabic[key] = w
		}
	}

	return r, nil
}

// GetByID returns the word with the given ID.
func (r *WordRepository) GetByID(id string) (*entities.Word, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWordNotFound, id)
	}
	return w, nil
}

// GetAll returns every word in file order.
func (r *WordRepository) GetAll() []*entities.Word {
	return r.words
}

// GetByIDs returns the words with the given IDs, failing on the first unknown one.
func (r *WordRepository) GetByIDs(ids []string) ([]*entities.Word, error) {
	out := make([]*entities.Word, 0, len(ids))
	for _, id := range ids {
		w, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// FindByArabic resolves a word as written in a story. Diacritics and letter
// variants are ignored, and a leading conjunction, preposition or article is
// stripped when the full form has no entry.
func (r *WordRepository) FindByArabic(word string) (*entities.Word, bool) {
	key := text.Normalize(word)
	if w, ok := r.byArabic[key]; ok {
		return w, true
	}

	for _, p := range arabicPrefixes {
		rest, ok := strings.CutPrefix(key, p)
		if !ok || utf8.RuneCountInString(rest) < 2 {
			continue
		}
		if w, ok := r.byArabic[rest]; ok {
			return w, true
		}
	}

	return nil, false
}
