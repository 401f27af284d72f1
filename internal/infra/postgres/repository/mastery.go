package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/infra/postgres"
)

// MasteryRepository stores per-word mastery records.
type MasteryRepository struct {
	db postgres.DBTX
}

func NewMasteryRepository(db postgres.DBTX) *MasteryRepository {
	return &MasteryRepository{db: db}
}

// GetByUserID returns all mastery records of a user.
func (r *MasteryRepository) GetByUserID(ctx context.Context, userID int64) ([]*entities.WordMastery, error) {
	query := `
		SELECT user_id, word_id, total_score, review_count, correct_count,
		       first_seen_at, last_reviewed_at, mastered_at
		FROM word_mastery
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	defer rows.Close()

	var out []*entities.WordMastery
	for rows.Next() {
		var m entities.WordMastery
		if err := rows.Scan(
			&m.UserID,
			&m.WordID,
			&m.TotalScore,
			&m.ReviewCount,
			&m.CorrectCount,
			&m.FirstSeenAt,
			&m.LastReviewedAt,
			&m.MasteredAt,
		); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		out = append(out, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mastery: %w", err)
	}

	return out, nil
}

// SaveAll upserts the records in one batch inside a transaction.
func (r *MasteryRepository) SaveAll(ctx context.Context, userID int64, records []entities.WordMastery) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO word_mastery (
			user_id, word_id, total_score, review_count, correct_count,
			first_seen_at, last_reviewed_at, mastered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			total_score = EXCLUDED.total_score,
			review_count = EXCLUDED.review_count,
			correct_count = EXCLUDED.correct_count,
			first_seen_at = LEAST(word_mastery.first_seen_at, EXCLUDED.first_seen_at),
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			mastered_at = COALESCE(word_mastery.mastered_at, EXCLUDED.mastered_at)
	`

	batch := &pgx.Batch{}
	for _, m := range records {
		batch.Queue(
			query,
			userID,
			m.WordID,
			m.TotalScore,
			m.ReviewCount,
			m.CorrectCount,
			m.FirstSeenAt,
			m.LastReviewedAt,
			m.MasteredAt,
		)
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert mastery: %w", err)
		}
		return nil
	})
}

// DeleteByUser removes every mastery record of a user.
func (r *MasteryRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM word_mastery WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete word_mastery: %w", err)
	}
	return nil
}
