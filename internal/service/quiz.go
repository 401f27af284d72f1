package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

// DefaultQuizSize is the number of questions in a quiz.
const DefaultQuizSize = 10

var (
	ErrNoUnlockedWords      = errors.New("no unlocked words")
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrInvalidOption        = errors.New("invalid option index")
)

type QuizService struct {
	progress  *ProgressService
	generator *QuizGenerator
	quizRepo  QuizRepository
	storage   QuizStorage
	logger    *zap.Logger
	size      int
	now       func() time.Time

	mu sync.Mutex // guards session state while answering
}

func NewQuizService(
	progress *ProgressService,
	generator *QuizGenerator,
	quizRepo QuizRepository,
	storage QuizStorage,
	size int,
	logger *zap.Logger,
) *QuizService {
	if size <= 0 {
		size = DefaultQuizSize
	}
	return &QuizService{
		progress:  progress,
		generator: generator,
		quizRepo:  quizRepo,
		storage:   storage,
		logger:    logger,
		size:      size,
		now:       time.Now,
	}
}

// Start creates an in-progress quiz over the user's unlocked words.
// Mastered words are left out unless nothing else is left to practice.
func (s *QuizService) Start(ctx context.Context, userID int64) (*entities.QuizSession, error) {
	tracker, err := s.progress.Tracker(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.progress.UnlockedWords(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(unlocked) == 0 {
		return nil, ErrNoUnlockedWords
	}

	pool := SelectQuizPool(unlocked, tracker.IsMastered, true)
	if len(pool) == 0 {
		pool = SelectQuizPool(unlocked, tracker.IsMastered, false)
	}

	session := s.generator.RunQuizSession(pool, s.size)
	session.UserID = userID

	if len(session.Skipped) > 0 {
		s.logger.Warn("words skipped for lack of distractors",
			zap.Int64("user_id", userID),
			zap.Strings("word_ids", session.Skipped),
		)
	}
	if len(session.Questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	s.storage.Store(session)
	return session, nil
}

// Get returns an active session owned by userID.
func (s *QuizService) Get(userID int64, sessionID string) (*entities.QuizSession, error) {
	session, ok := s.storage.Get(sessionID)
	if !ok || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// DropUser discards the user's running session without saving it.
func (s *QuizService) DropUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage.DeleteByUser(userID)
}

// Answer applies the option at optionIndex to the current question, updates
// the word's mastery and finishes the session after the last question.
func (s *QuizService) Answer(
	ctx context.Context,
	userID int64,
	sessionID string,
	optionIndex int,
) (entities.AnswerOutcome, *entities.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.Get(userID, sessionID)
	if err != nil {
		return entities.AnswerOutcome{}, nil, err
	}

	q, ok := session.Current()
	if !ok {
		return entities.AnswerOutcome{}, session, entities.ErrSessionNotActive
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return entities.AnswerOutcome{}, session, ErrInvalidOption
	}

	tracker, err := s.progress.Tracker(ctx, userID)
	if err != nil {
		return entities.AnswerOutcome{}, session, err
	}

	outcome, err := session.Answer(q.Options[optionIndex], s.now())
	if err != nil {
		return entities.AnswerOutcome{}, session, err
	}
	tracker.RecordAnswer(q.WordID, outcome.IsCorrect)

	if outcome.Completed {
		s.finish(ctx, session)
	}

	return outcome, session, nil
}

// End stops the quiz early. Answers given so far are kept.
func (s *QuizService) End(ctx context.Context, userID int64, sessionID string) (*entities.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.Get(userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.End(s.now())
	s.finish(ctx, session)

	return session, nil
}

// finish persists a completed session. Storage failures are logged and
// never undo the in-memory result.
func (s *QuizService) finish(ctx context.Context, session *entities.QuizSession) {
	s.storage.Delete(session.ID)

	if session.Answered() > 0 {
		if err := s.quizRepo.SaveResult(ctx, session); err != nil {
			s.logger.Error("failed to save quiz result",
				zap.Error(err),
				zap.Int64("user_id", session.UserID),
				zap.String("session_id", session.ID),
			)
		}
	}

	if err := s.progress.Save(ctx, session.UserID); err != nil {
		s.logger.Error("failed to save mastery",
			zap.Error(fmt.Errorf("finish quiz %s: %w", session.ID, err)),
			zap.Int64("user_id", session.UserID),
		)
	}
}
