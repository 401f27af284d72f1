package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/text"
)

var (
	errWordMissing = errors.New("word missing")
	now            = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
)

func vocabulary() []*entities.Word {
	return []*entities.Word{
		{ID: "kitab", Arabic: "كِتَاب", English: "book", Transliteration: "kitab", PartOfSpeech: "noun"},
		{ID: "bayt", Arabic: "بَيْت", English: "house", Transliteration: "bayt", PartOfSpeech: "noun"},
		{ID: "madina", Arabic: "مَدِينَة", English: "city", Transliteration: "madina", PartOfSpeech: "noun"},
		{ID: "qalam", Arabic: "قَلَم", English: "pen", Transliteration: "qalam", PartOfSpeech: "noun"},
		{ID: "kabir", Arabic: "كَبِير", English: "big", Transliteration: "kabir", PartOfSpeech: "adjective"},
		{ID: "dhahaba", Arabic: "ذَهَبَ", English: "went", Transliteration: "dhahaba", PartOfSpeech: "verb"},
	}
}

func wordIDs(words []*entities.Word) []string {
	ids := make([]string, 0, len(words))
	for _, w := range words {
		ids = append(ids, w.ID)
	}
	return ids
}

type fakeWords struct {
	all []*entities.Word
}

func (f *fakeWords) GetByID(id string) (*entities.Word, error) {
	for _, w := range f.all {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, errWordMissing
}

func (f *fakeWords) GetAll() []*entities.Word {
	return f.all
}

func (f *fakeWords) FindByArabic(word string) (*entities.Word, bool) {
	key := text.Normalize(word)
	for _, w := range f.all {
		if text.Normalize(w.Arabic) == key {
			return w, true
		}
	}
	return nil, false
}

type fakeStories struct {
	all []*entities.Story
}

func (f *fakeStories) GetByID(id string) (*entities.Story, error) {
	for _, s := range f.all {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("story missing")
}

func (f *fakeStories) GetAll() []*entities.Story {
	return f.all
}

type mockMasteryRepo struct {
	getByUserIDFunc func(ctx context.Context, userID int64) ([]*entities.WordMastery, error)
	saveAllFunc     func(ctx context.Context, userID int64, records []entities.WordMastery) error
}

func newMockMasteryRepo() *mockMasteryRepo {
	return &mockMasteryRepo{
		getByUserIDFunc: func(ctx context.Context, userID int64) ([]*entities.WordMastery, error) {
			return nil, nil
		},
		saveAllFunc: func(ctx context.Context, userID int64, records []entities.WordMastery) error {
			return nil
		},
	}
}

func (m *mockMasteryRepo) GetByUserID(ctx context.Context, userID int64) ([]*entities.WordMastery, error) {
	return m.getByUserIDFunc(ctx, userID)
}

func (m *mockMasteryRepo) SaveAll(ctx context.Context, userID int64, records []entities.WordMastery) error {
	return m.saveAllFunc(ctx, userID, records)
}

type mockProgressRepo struct {
	completeStoryFunc        func(ctx context.Context, userID int64, storyID string, wordIDs []string, completedAt time.Time) error
	getUnlockedWordIDsFunc   func(ctx context.Context, userID int64) ([]string, error)
	getCompletedStoryIDsFunc func(ctx context.Context, userID int64) ([]string, error)
}

func newMockProgressRepo(unlocked []string) *mockProgressRepo {
	return &mockProgressRepo{
		completeStoryFunc: func(ctx context.Context, userID int64, storyID string, wordIDs []string, completedAt time.Time) error {
			return nil
		},
		getUnlockedWordIDsFunc: func(ctx context.Context, userID int64) ([]string, error) {
			return unlocked, nil
		},
		getCompletedStoryIDsFunc: func(ctx context.Context, userID int64) ([]string, error) {
			return nil, nil
		},
	}
}

func (m *mockProgressRepo) CompleteStory(ctx context.Context, userID int64, storyID string, wordIDs []string, completedAt time.Time) error {
	return m.completeStoryFunc(ctx, userID, storyID, wordIDs, completedAt)
}

func (m *mockProgressRepo) GetUnlockedWordIDs(ctx context.Context, userID int64) ([]string, error) {
	return m.getUnlockedWordIDsFunc(ctx, userID)
}

func (m *mockProgressRepo) GetCompletedStoryIDs(ctx context.Context, userID int64) ([]string, error) {
	return m.getCompletedStoryIDsFunc(ctx, userID)
}

type mockQuizRepo struct {
	saveResultFunc func(ctx context.Context, session *entities.QuizSession) error
}

func (m *mockQuizRepo) SaveResult(ctx context.Context, session *entities.QuizSession) error {
	return m.saveResultFunc(ctx, session)
}

type mapStorage struct {
	mu       sync.Mutex
	sessions map[string]*entities.QuizSession
}

func newMapStorage() *mapStorage {
	return &mapStorage{sessions: make(map[string]*entities.QuizSession)}
}

func (s *mapStorage) Store(session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *mapStorage) Get(id string) (*entities.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *mapStorage) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *mapStorage) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
}

type mockUserRepo struct {
	saveFunc   func(ctx context.Context, user *entities.User) (bool, error)
	existsFunc func(ctx context.Context, userID int64) (bool, error)
}

func (m *mockUserRepo) Save(ctx context.Context, user *entities.User) (bool, error) {
	return m.saveFunc(ctx, user)
}

func (m *mockUserRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	return m.existsFunc(ctx, userID)
}
