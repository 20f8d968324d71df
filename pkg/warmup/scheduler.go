package warmup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const tickInterval = time.Minute

// Scheduler drives the controller in continuous mode: one pass immediately,
// then one pass per day once the local clock reaches the configured send
// time. Passes run serially on a one-minute poll.
type Scheduler struct {
	ctrl     *Controller
	sendTime time.Time // only hour and minute are used
	log      *zap.SugaredLogger

	lastFired string // calendar date of the last scheduled fire
}

// NewScheduler creates a scheduler firing daily at sendTime (HH:MM local).
func NewScheduler(ctrl *Controller, sendTime time.Time, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		ctrl:     ctrl,
		sendTime: sendTime,
		log:      log.Named("scheduler"),
	}
}

// Run blocks until ctx is canceled. The in-progress pass always runs to
// completion; cancellation is observed between passes.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Infow("Starting continuous warm-up service",
		"sendTime", s.sendTime.Format("15:04"))

	// Also run immediately, like a fresh deploy should.
	now := time.Now()
	s.recordStartup(now)
	if _, err := s.ctrl.RunDaily(ctx, now); err != nil {
		s.log.Errorw("Warm-up pass failed", "error", err)
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Continuous warm-up service shutting down")
			return ctx.Err()
		case now := <-ticker.C:
			if !s.shouldFire(now) {
				continue
			}
			s.lastFired = now.Format("2006-01-02")
			if _, err := s.ctrl.RunDaily(ctx, now); err != nil {
				s.log.Errorw("Warm-up pass failed", "error", err)
			}
		}
	}
}

// recordStartup counts the immediate startup pass as today's scheduled fire
// only when it already ran at or after the send time. A service started
// earlier in the day still fires once the send time arrives.
func (s *Scheduler) recordStartup(now time.Time) {
	if !now.Before(s.dueAt(now)) {
		s.lastFired = now.Format("2006-01-02")
	}
}

// shouldFire reports whether the scheduled daily pass is due: the wall clock
// has reached the send time and no scheduled pass ran today yet.
func (s *Scheduler) shouldFire(now time.Time) bool {
	if s.lastFired == now.Format("2006-01-02") {
		return false
	}
	return !now.Before(s.dueAt(now))
}

// dueAt returns the send time on now's calendar date.
func (s *Scheduler) dueAt(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(),
		s.sendTime.Hour(), s.sendTime.Minute(), 0, 0, now.Location())
}
