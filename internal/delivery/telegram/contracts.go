package telegram

import (
	"context"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/service"
	"github.com/aliskhannn/arabic-stories-bot/internal/storage"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (bool, error)
}

type StoryService interface {
	Get(id string) (*entities.Story, error)
	List() []*entities.Story
	Render(story *entities.Story) []service.RenderedBlock
	Vocabulary(story *entities.Story) []*entities.Word
}

type WordService interface {
	Get(id string) (*entities.Word, error)
	Search(query string) []*entities.Word
}

type ProgressService interface {
	Tracker(ctx context.Context, userID int64) (*service.MasteryTracker, error)
	CompleteStory(ctx context.Context, userID int64, story *entities.Story) error
	CompletedStoryIDs(ctx context.Context, userID int64) (map[string]bool, error)
	GetProgressSummary(ctx context.Context, userID int64) (*service.ProgressSummary, error)
	WeakestWords(ctx context.Context, userID int64, n int) ([]service.WordProgress, error)
}

type QuizService interface {
	Start(ctx context.Context, userID int64) (*entities.QuizSession, error)
	Answer(ctx context.Context, userID int64, sessionID string, optionIndex int) (entities.AnswerOutcome, *entities.QuizSession, error)
	End(ctx context.Context, userID int64, sessionID string) (*entities.QuizSession, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}

type CardStorage interface {
	Swap(userID, chatID int64, messageID int) (storage.CardMessage, bool)
	Delete(userID int64)
}
