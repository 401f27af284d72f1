package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockFlusher struct {
	calls atomic.Int32
}

func (m *mockFlusher) FlushAll(ctx context.Context) error {
	m.calls.Add(1)
	return ctx.Err()
}

func TestMasteryFlusherFlushesOnShutdown(t *testing.T) {
	target := &mockFlusher{}
	f := NewMasteryFlusher(target, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.Run(ctx))
	assert.Equal(t, int32(1), target.calls.Load())
}

func TestMasteryFlusherRejectsBadInterval(t *testing.T) {
	f := NewMasteryFlusher(&mockFlusher{}, 0, zap.NewNop())
	assert.Error(t, f.Run(context.Background()))
}
