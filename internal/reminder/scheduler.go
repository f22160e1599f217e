package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Runner is the work invoked on every scheduled fire.
type Runner interface {
	RunOnce(ctx context.Context, now time.Time)
}

// Scheduler fires the runner once daily at a fixed local hour. Fires are
// serial, so a run can never overlap with itself.
type Scheduler struct {
	runner Runner
	hour   int
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduler(runner Runner, hour int) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 9
	}
	return &Scheduler{
		runner: runner,
		hour:   hour,
		logger: slog.Default().With(slog.String("component", "reminder_scheduler")),
		now:    time.Now,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		now := s.now()
		next := s.nextFire(now)
		timer := time.NewTimer(next.Sub(now))
		s.logger.Info("next reminder run scheduled", slog.Time("at", next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("reminder scheduler stopped")
			return
		case <-timer.C:
			s.runner.RunOnce(ctx, s.now())
		}
	}
}

func (s *Scheduler) nextFire(now time.Time) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}
