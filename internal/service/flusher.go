package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// shutdownFlushTimeout bounds the final save when the bot stops.
const shutdownFlushTimeout = 10 * time.Second

// Flusher is implemented by services holding unsaved state.
type Flusher interface {
	FlushAll(ctx context.Context) error
}

// MasteryFlusher periodically saves mastery records that failed to persist
// or were changed outside a quiz.
type MasteryFlusher struct {
	target   Flusher
	interval time.Duration
	logger   *zap.Logger
}

func NewMasteryFlusher(target Flusher, interval time.Duration, logger *zap.Logger) *MasteryFlusher {
	return &MasteryFlusher{
		target:   target,
		interval: interval,
		logger:   logger,
	}
}

// Run schedules the flush and blocks until ctx is done, then flushes once more.
func (f *MasteryFlusher) Run(ctx context.Context) error {
	if f.interval <= 0 {
		return fmt.Errorf("invalid flush interval %s", f.interval)
	}

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(fmt.Sprintf("@every %s", f.interval), func() {
		f.flush(ctx)
	})
	if err != nil {
		return fmt.Errorf("add flush job: %w", err)
	}

	c.Start()
	f.logger.Info("mastery flusher started", zap.Duration("interval", f.interval))

	<-ctx.Done()

	<-c.Stop().Done()

	final, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
	defer cancel()
	f.flush(final)

	f.logger.Info("mastery flusher stopped")
	return nil
}

func (f *MasteryFlusher) flush(ctx context.Context) {
	if err := f.target.FlushAll(ctx); err != nil {
		f.logger.Error("failed to flush mastery", zap.Error(err))
	}
}
