package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

func TestQuizStorage(t *testing.T) {
	s := NewQuizStorage()

	first := entities.NewQuizSession("a", 1)
	s.Store(first)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Same(t, first, got)

	active, ok := s.ActiveFor(1)
	require.True(t, ok)
	assert.Same(t, first, active)

	second := entities.NewQuizSession("b", 1)
	s.Store(second)

	_, ok = s.Get("a")
	assert.False(t, ok, "old session of the same user is dropped")

	other := entities.NewQuizSession("c", 2)
	s.Store(other)

	s.Delete("b")
	_, ok = s.ActiveFor(1)
	assert.False(t, ok)

	active, ok = s.ActiveFor(2)
	require.True(t, ok)
	assert.Equal(t, "c", active.ID)

	s.Delete("missing")
}

func TestQuizStorageDeleteByUser(t *testing.T) {
	s := NewQuizStorage()
	s.Store(entities.NewQuizSession("a", 1))
	s.Store(entities.NewQuizSession("b", 2))

	s.DeleteByUser(1)

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.ActiveFor(1)
	assert.False(t, ok)

	_, ok = s.Get("b")
	assert.True(t, ok, "other users keep their session")

	s.DeleteByUser(3)
}

func TestCardStorageSwapReplacesCard(t *testing.T) {
	s := NewCardStorage()

	_, ok := s.Swap(1, 100, 5)
	assert.False(t, ok)

	prev, ok := s.Swap(1, 100, 6)
	require.True(t, ok)
	assert.Equal(t, 5, prev.MessageID)
	assert.Equal(t, int64(100), prev.ChatID)

	cur, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 6, cur.MessageID)

	s.Delete(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}
