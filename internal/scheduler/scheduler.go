package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type Task func(ctx context.Context) error

// Periodic runs a task once at start and then at every local midnight.
// A failed run is retried after RetryBackoff unless midnight comes first.
type Periodic struct {
	Name         string
	Task         Task
	Clock        Clock
	Location     *time.Location
	RetryBackoff time.Duration
}

func NextMidnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// NextRun picks the wait before the next attempt.
func (p *Periodic) NextRun(now time.Time, failed bool) time.Duration {
	wait := NextMidnight(now, p.Location).Sub(now)
	if failed && p.RetryBackoff > 0 && p.RetryBackoff < wait {
		wait = p.RetryBackoff
	}
	return wait
}

// Run blocks until ctx is cancelled.
func (p *Periodic) Run(ctx context.Context) {
	zap.L().Info("Scheduler started", zap.String("task", p.Name))
	for {
		started := p.Clock.Now()
		err := p.Task(ctx)
		if err != nil {
			zap.L().Error("Scheduled run failed", zap.String("task", p.Name), zap.Error(err))
		} else {
			zap.L().Info("Scheduled run finished", zap.String("task", p.Name), zap.Duration("took", p.Clock.Now().Sub(started)))
		}

		wait := p.NextRun(p.Clock.Now(), err != nil)
		zap.L().Debug("Next scheduled run", zap.String("task", p.Name), zap.Duration("in", wait))
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping scheduler", zap.String("task", p.Name))
			return
		case <-p.Clock.After(wait):
		}
	}
}

// Start runs the loop in its own goroutine.
func (p *Periodic) Start(ctx context.Context) {
	go p.Run(ctx)
}
