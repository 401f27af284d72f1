package service

import (
	"context"
	"fmt"
)

// ResetService starts a user over: stories, vocabulary and quiz history are removed.
type ResetService struct {
	repo     ResetRepository
	progress *ProgressService
	quizzes  *QuizService
}

func NewResetService(repo ResetRepository, progress *ProgressService, quizzes *QuizService) *ResetService {
	return &ResetService{
		repo:     repo,
		progress: progress,
		quizzes:  quizzes,
	}
}

// ResetUser abandons the user's running quiz, then deletes stored progress.
// Answers to the abandoned quiz are rejected afterwards.
func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	s.quizzes.DropUser(userID)

	if err := s.progress.Reset(ctx, userID, s.repo.ResetUser); err != nil {
		return fmt.Errorf("reset user %d: %w", userID, err)
	}
	return nil
}
