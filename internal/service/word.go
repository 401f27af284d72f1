package service

import (
	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

// maxSearchResults bounds the number of words returned by Search.
const maxSearchResults = 5

type WordService struct {
	repository WordRepository
	matcher    *WordMatcher
}

func NewWordService(repository WordRepository) *WordService {
	return &WordService{
		repository: repository,
		matcher:    NewWordMatcher(),
	}
}

func (s *WordService) Get(id string) (*entities.Word, error) {
	return s.repository.GetByID(id)
}

// LookupArabic finds the vocabulary entry for a word as it appears in story text.
func (s *WordService) LookupArabic(word string) (*entities.Word, bool) {
	return s.repository.FindByArabic(word)
}

// HasMeaning reports whether the Arabic word has a vocabulary entry.
func (s *WordService) HasMeaning(word string) bool {
	_, ok := s.repository.FindByArabic(word)
	return ok
}

// Search looks the query up in the whole vocabulary.
func (s *WordService) Search(query string) []*entities.Word {
	return s.matcher.Match(query, s.repository.GetAll(), maxSearchResults)
}
