package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/arabic-stories-bot/internal/infra/postgres"
)

// ResetRepository wipes a user's learning history in one transaction.
type ResetRepository struct {
	tr *postgres.Transactor
}

func NewResetRepository(tr *postgres.Transactor) *ResetRepository {
	return &ResetRepository{tr: tr}
}

func (r *ResetRepository) ResetUser(ctx context.Context, userID int64) error {
	return r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := NewQuizRepository(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := NewMasteryRepository(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return NewProgressRepository(tx).DeleteByUser(ctx, userID)
	})
}
