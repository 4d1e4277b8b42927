package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mhakimi/tribeland/internal/notify"
	"github.com/mhakimi/tribeland/pkg/logger"
)

// TickScheduler invokes the tick engine on a fixed interval until its
// context is cancelled. Failed ticks are logged and alerted but never stop
// the loop; the guard marker stays unset on failure, so the next interval
// retries the same work.
type TickScheduler struct {
	ticks    *GameTickService
	notifier notify.Notifier
	interval time.Duration
}

func NewTickScheduler(ticks *GameTickService, notifier notify.Notifier, interval time.Duration) *TickScheduler {
	return &TickScheduler{
		ticks:    ticks,
		notifier: notifier,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. The first tick fires immediately.
func (s *TickScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.invoke(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.invoke(ctx)
		}
	}
}

func (s *TickScheduler) invoke(ctx context.Context) {
	runID := uuid.NewString()
	start := time.Now()

	if err := s.ticks.ProcessGameTick(ctx); err != nil {
		logger.Error("Game tick failed", "run_id", runID, "error", err)
		s.notifier.TickFailed(runID, err)
		return
	}

	logger.Debug("Tick invocation finished", "run_id", runID, "duration", time.Since(start))
}
