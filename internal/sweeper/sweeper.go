// Package sweeper periodically closes campaigns whose deadline has passed.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Closer closes every expired open campaign and reports how many it closed.
type Closer interface {
	CloseExpired(ctx context.Context) (int, error)
}

type Sweeper struct {
	closer   Closer
	schedule cron.Schedule
	spec     string
}

// New validates a standard five-field cron spec (or a descriptor such as @daily).
// Schedules are evaluated in UTC.
func New(closer Closer, spec string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing sweep schedule %q: %w", spec, err)
	}

	return &Sweeper{closer: closer, schedule: schedule, spec: spec}, nil
}

// Run sweeps once to catch up, then on every tick until ctx is cancelled.
// It returns after the in-flight sweep, if any, has finished.
func (s *Sweeper) Run(ctx context.Context) error {
	s.RunOnce(ctx)

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() { s.RunOnce(ctx) }))
	c.Start()

	slog.Info("campaign sweeper started", "schedule", s.spec)

	<-ctx.Done()
	<-c.Stop().Done()

	slog.Info("campaign sweeper stopped")

	return nil
}

// RunOnce performs a single sweep. A failure is logged and left for the next tick.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	closed, err := s.closer.CloseExpired(ctx)
	if err != nil {
		slog.Error("campaign sweep failed", "closed", closed, "error", err)
		return closed, err
	}

	slog.Info("campaign sweep finished", "closed", closed)

	return closed, nil
}
