package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/infra/postgres"
)

var ErrSessionNotComplete = errors.New("quiz session is not complete")

// QuizRepository keeps the history of finished quiz sessions.
type QuizRepository struct {
	db postgres.DBTX
}

// NewQuizRepository creates a new QuizRepository with the provided database pool.
func NewQuizRepository(db postgres.DBTX) *QuizRepository {
	return &QuizRepository{db: db}
}

// SaveResult stores the summary of a completed session. Saving the same
// session twice is a no-op.
func (r *QuizRepository) SaveResult(ctx context.Context, session *entities.QuizSession) error {
	if !session.IsComplete() || session.CompletedAt == nil {
		return ErrSessionNotComplete
	}

	query := `
		INSERT INTO quiz_results (
			id, user_id, question_count, correct_count, wrong_count,
			total_score, best_streak, skipped_count, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(
		ctx,
		query,
		session.ID,
		session.UserID,
		len(session.Questions),
		session.CorrectCount,
		session.WrongCount,
		session.TotalScore,
		session.BestStreak,
		len(session.Skipped),
		session.StartedAt,
		*session.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	return nil
}

// DeleteByUser removes the quiz history of a user.
func (r *QuizRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quiz_results WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete quiz_results: %w", err)
	}
	return nil
}
