package postings

import (
	"context"
	"sync"
	"time"

	"recruit-backend/internal/shared/telemetry"
)

// Sweeper periodically re-derives posting statuses. A run that is still in
// flight when the next tick fires causes that tick to be skipped.
type Sweeper struct {
	Svc      *Service
	Interval time.Duration

	mu sync.Mutex
}

// Run blocks until ctx is cancelled, sweeping once immediately and then on
// every interval tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweepOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	if !s.mu.TryLock() {
		telemetry.Warn("posting.sweep.skipped", map[string]any{
			"reason": "previous run still in progress",
		})
		return
	}
	defer s.mu.Unlock()

	start := time.Now()
	updated, err := s.Svc.Sweep(ctx, start.UTC())
	if err != nil {
		telemetry.Error("posting.sweep.failed", map[string]any{
			"error":   err.Error(),
			"updated": updated,
		})
		return
	}
	telemetry.Info("posting.sweep.complete", map[string]any{
		"updated":     updated,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
