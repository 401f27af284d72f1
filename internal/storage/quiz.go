package storage

import (
	"sync"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

// QuizStorage provides in-memory storage for quiz sessions being played.
// A user has at most one active session: storing a new one drops the old.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[string]*entities.QuizSession
	byUser   map[int64]string
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[string]*entities.QuizSession),
		byUser:   make(map[int64]string),
	}
}

// Store saves the session, replacing any previous session of the same user.
func (s *QuizStorage) Store(session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byUser[session.UserID]; ok && prev != session.ID {
		delete(s.sessions, prev)
	}
	s.sessions[session.ID] = session
	s.byUser[session.UserID] = session.ID
}

// Get retrieves a session by ID.
func (s *QuizStorage) Get(sessionID string) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	return session, ok
}

// ActiveFor returns the user's current session, if any.
func (s *QuizStorage) ActiveFor(userID int64) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUser[userID]
	if !ok {
		return nil, false
	}
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a session.
func (s *QuizStorage) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	delete(s.sessions, sessionID)
	if s.byUser[session.UserID] == sessionID {
		delete(s.byUser, session.UserID)
	}
}

// DeleteByUser removes the user's current session, if any.
func (s *QuizStorage) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byUser[userID]; ok {
		delete(s.sessions, id)
		delete(s.byUser, userID)
	}
}
