package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor runs a function inside a transaction on a pool or, when given a
// transaction, inside a savepoint.
type Transactor struct {
	db DBTX
}

func NewTransactor(db DBTX) *Transactor {
	return &Transactor{db: db}
}

// WithinTx commits when fn succeeds and rolls back otherwise.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}
