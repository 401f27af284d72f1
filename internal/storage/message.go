package storage

import (
	"sync"
	"time"
)

// CardMessage points at the last word card sent to a user.
type CardMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// CardStorage remembers one word card message per user, so the previous card
// can be removed when the user taps another word.
type CardStorage struct {
	mu       sync.RWMutex
	messages map[int64]CardMessage
}

func NewCardStorage() *CardStorage {
	return &CardStorage{
		messages: make(map[int64]CardMessage),
	}
}

// Swap stores the new card and returns the one it replaces.
func (s *CardStorage) Swap(userID, chatID int64, messageID int) (CardMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.messages[userID]
	s.messages[userID] = CardMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}
	return prev, ok
}

func (s *CardStorage) Get(userID int64) (CardMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[userID]
	return msg, ok
}

func (s *CardStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, userID)
}
