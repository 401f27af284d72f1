package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/bot?sslmode=disable", migrationURL("postgres://u:p@db:5432/bot?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/bot", migrationURL("postgresql://u@db/bot"))
	assert.Equal(t, "pgx5://db/bot", migrationURL("pgx5://db/bot"))
}
