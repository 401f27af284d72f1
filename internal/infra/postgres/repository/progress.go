package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/arabic-stories-bot/internal/infra/postgres"
)

// ProgressRepository stores completed stories and the vocabulary they unlocked.
type ProgressRepository struct {
	db postgres.DBTX
}

func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CompleteStory records the story as completed and unlocks its words.
// Completing a story again keeps the original timestamps.
func (r *ProgressRepository) CompleteStory(
	ctx context.Context,
	userID int64,
	storyID string,
	wordIDs []string,
	completedAt time.Time,
) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO story_progress (user_id, story_id, completed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, story_id) DO NOTHING
		`, userID, storyID, completedAt)
		if err != nil {
			return fmt.Errorf("insert story progress: %w", err)
		}

		return NewProgressRepository(tx).UnlockWords(ctx, userID, storyID, wordIDs, completedAt)
	})
}

// UnlockWords makes words available for quizzes. Already unlocked words are left as is.
func (r *ProgressRepository) UnlockWords(
	ctx context.Context,
	userID int64,
	storyID string,
	wordIDs []string,
	unlockedAt time.Time,
) error {
	if len(wordIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, id := range wordIDs {
		batch.Queue(`
			INSERT INTO unlocked_words (user_id, word_id, story_id, unlocked_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, word_id) DO NOTHING
		`, userID, id, storyID, unlockedAt)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("unlock words: %w", err)
	}

	return nil
}

// GetUnlockedWordIDs returns unlocked word IDs in unlock order.
func (r *ProgressRepository) GetUnlockedWordIDs(ctx context.Context, userID int64) ([]string, error) {
	return r.queryIDs(ctx, `
		SELECT word_id FROM unlocked_words
		WHERE user_id = $1
		ORDER BY unlocked_at, word_id
	`, userID)
}

// GetCompletedStoryIDs returns the IDs of completed stories in completion order.
func (r *ProgressRepository) GetCompletedStoryIDs(ctx context.Context, userID int64) ([]string, error) {
	return r.queryIDs(ctx, `
		SELECT story_id FROM story_progress
		WHERE user_id = $1
		ORDER BY completed_at, story_id
	`, userID)
}

// DeleteByUser removes story progress and unlocked words of a user.
func (r *ProgressRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM unlocked_words WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete unlocked_words: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM story_progress WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete story_progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) queryIDs(ctx context.Context, query string, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect ids: %w", err)
	}

	return ids, nil
}
