package service

import (
	"context"
	"time"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
}

// WordRepository serves the bundled vocabulary.
type WordRepository interface {
	GetByID(id string) (*entities.Word, error)
	GetAll() []*entities.Word
	FindByArabic(word string) (*entities.Word, bool)
}

// StoryRepository serves the bundled stories.
type StoryRepository interface {
	GetByID(id string) (*entities.Story, error)
	GetAll() []*entities.Story
}

// MasteryRepository persists per-word mastery records.
type MasteryRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]*entities.WordMastery, error)
	SaveAll(ctx context.Context, userID int64, records []entities.WordMastery) error
}

// ProgressRepository persists story completion and unlocked vocabulary.
type ProgressRepository interface {
	CompleteStory(ctx context.Context, userID int64, storyID string, wordIDs []string, completedAt time.Time) error
	GetUnlockedWordIDs(ctx context.Context, userID int64) ([]string, error)
	GetCompletedStoryIDs(ctx context.Context, userID int64) ([]string, error)
}

// QuizRepository keeps a history of finished quiz sessions.
type QuizRepository interface {
	SaveResult(ctx context.Context, session *entities.QuizSession) error
}

// QuizStorage holds quiz sessions that are still being played.
type QuizStorage interface {
	Store(session *entities.QuizSession)
	Get(sessionID string) (*entities.QuizSession, bool)
	Delete(sessionID string)
	DeleteByUser(userID int64)
}

// ResetRepository deletes all learning data of a user.
type ResetRepository interface {
	ResetUser(ctx context.Context, userID int64) error
}
