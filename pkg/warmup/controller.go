package warmup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yksanjo/email-warmup-service/pkg/config"
	"github.com/yksanjo/email-warmup-service/pkg/mail"
	"github.com/yksanjo/email-warmup-service/pkg/metrics"
	"github.com/yksanjo/email-warmup-service/pkg/recipients"
	"github.com/yksanjo/email-warmup-service/pkg/state"
)

// Outcome classifies the result of a single warm-up pass.
type Outcome string

const (
	OutcomePaused       Outcome = "paused"
	OutcomeNotStarted   Outcome = "not-started"
	OutcomeComplete     Outcome = "complete"
	OutcomeQuotaReached Outcome = "quota-reached"
	OutcomeNoRecipients Outcome = "no-recipients"
	OutcomeSent         Outcome = "sent"
)

// Invalid-transition warnings. Reported to the caller, never fatal.
var (
	ErrAlreadyStarted = errors.New("warm-up already started")
	ErrNotStarted     = errors.New("warm-up not started")
)

// SendFailure records one failed delivery attempt within a batch.
type SendFailure struct {
	Recipient string
	Err       error
}

// Result reports what a warm-up pass did.
type Result struct {
	Outcome   Outcome
	Day       int
	Target    int
	Attempted int
	Sent      int
	Failures  []SendFailure
}

// Controller owns the daily-quota state machine. It is synchronous and
// single-instance: overlapping invocations against the same state file can
// double-count.
type Controller struct {
	cfg      config.Warmup
	store    *state.Store
	rec      *state.Record
	provider recipients.Provider
	sender   mail.Sender
	pacer    *rate.Limiter
	log      *zap.SugaredLogger
}

// New loads the persisted record (default-constructing a fresh one when the
// store is empty) and returns a controller over it.
func New(cfg *config.Config, store *state.Store, provider recipients.Provider, sender mail.Sender, log *zap.SugaredLogger) (*Controller, error) {
	rec, found, err := store.Load()
	if err != nil {
		return nil, err
	}
	if !found {
		rec = &state.Record{}
	}

	limit := rate.Inf
	if cfg.SendInterval > 0 {
		limit = rate.Every(cfg.SendInterval)
	}

	return &Controller{
		cfg:      cfg.Warmup,
		store:    store,
		rec:      rec,
		provider: provider,
		sender:   sender,
		pacer:    rate.NewLimiter(limit, 1),
		log:      log.Named("warmup"),
	}, nil
}

// Record exposes the in-memory record for read-only use (status, tests).
func (c *Controller) Record() *state.Record {
	return c.rec
}

// Start initiates the warm-up and immediately triggers one pass.
// Returns ErrAlreadyStarted (a warning, not a failure) when the warm-up is
// already running.
func (c *Controller) Start(ctx context.Context, now time.Time) (*Result, error) {
	if c.rec.Started {
		c.log.Warn("Warm-up already started")
		return nil, ErrAlreadyStarted
	}

	startDate := now
	c.rec.Started = true
	c.rec.StartDate = &startDate
	c.rec.CurrentDay = 1
	c.rec.Paused = false
	if err := c.store.Save(c.rec); err != nil {
		return nil, err
	}

	c.log.Infow("Email warm-up started",
		"durationDays", c.cfg.DurationDays,
		"initialVolume", c.cfg.InitialVolume,
		"targetVolume", c.cfg.TargetVolume)

	return c.RunDaily(ctx, now)
}

// Pause suspends sending.
func (c *Controller) Pause() error {
	c.rec.Paused = true
	if err := c.store.Save(c.rec); err != nil {
		return err
	}
	c.log.Info("Warm-up paused")
	return nil
}

// Resume lifts a pause. Returns ErrNotStarted (a warning) when the warm-up
// was never started.
func (c *Controller) Resume() error {
	if !c.rec.Started {
		c.log.Warn("Warm-up not started, nothing to resume")
		return ErrNotStarted
	}
	c.rec.Paused = false
	if err := c.store.Save(c.rec); err != nil {
		return err
	}
	c.log.Info("Warm-up resumed")
	return nil
}

// RunDaily executes one warm-up pass: derive the day index, reset the daily
// counter on a date change, compute the remaining quota and send up to that
// many emails with a fixed pacing delay between attempts. Per-recipient
// failures are logged and counted, never aborting the batch. The record is
// persisted whenever it was mutated.
func (c *Controller) RunDaily(ctx context.Context, now time.Time) (*Result, error) {
	res, err := c.runDaily(ctx, now)
	if res != nil {
		metrics.RunsTotal.WithLabelValues(string(res.Outcome)).Inc()
		c.publishGauges(res)
	}
	return res, err
}

func (c *Controller) runDaily(ctx context.Context, now time.Time) (*Result, error) {
	if c.rec.Paused {
		c.log.Debug("Warm-up is paused, skipping pass")
		return &Result{Outcome: OutcomePaused, Day: c.rec.CurrentDay}, nil
	}
	if !c.rec.Started {
		c.log.Warn("Warm-up not started, use start to begin")
		return &Result{Outcome: OutcomeNotStarted}, nil
	}

	day := DayIndex(c.rec, now)
	mutated := day != c.rec.CurrentDay
	c.rec.CurrentDay = day

	if day > c.cfg.DurationDays {
		c.log.Infow("Warm-up complete", "durationDays", c.cfg.DurationDays)
		c.rec.Paused = true
		if err := c.store.Save(c.rec); err != nil {
			return nil, err
		}
		return &Result{Outcome: OutcomeComplete, Day: day}, nil
	}

	target := DailyVolume(day, c.cfg.DurationDays, c.cfg.InitialVolume, c.cfg.TargetVolume)

	if c.rec.ResetDailyCounter(now) {
		mutated = true
	}

	remaining := target - c.rec.EmailsSentToday
	if remaining <= 0 {
		c.log.Infow("Daily quota reached", "target", target, "sentToday", c.rec.EmailsSentToday)
		if mutated {
			if err := c.store.Save(c.rec); err != nil {
				return nil, err
			}
		}
		return &Result{Outcome: OutcomeQuotaReached, Day: day, Target: target}, nil
	}

	addrs, err := c.provider.Recipients()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipients: %w", err)
	}
	if len(addrs) == 0 {
		c.log.Warn("No recipients configured")
		if mutated {
			if err := c.store.Save(c.rec); err != nil {
				return nil, err
			}
		}
		return &Result{Outcome: OutcomeNoRecipients, Day: day, Target: target}, nil
	}

	batch := remaining
	if len(addrs) < batch {
		batch = len(addrs)
	}

	batchID := uuid.NewString()
	c.log.Infow("Sending warm-up emails",
		"batchID", batchID,
		"count", batch,
		"day", day,
		"durationDays", c.cfg.DurationDays)

	res := &Result{Outcome: OutcomeSent, Day: day, Target: target, Attempted: batch}
	for i, addr := range addrs[:batch] {
		// Fixed pacing delay before every attempt; the limiter's initial
		// token lets the first delivery go out immediately. A canceled
		// context stops before the next attempt, never mid-delivery.
		if err := c.pacer.Wait(ctx); err != nil {
			c.log.Warnw("Batch interrupted", "batchID", batchID, "after", i, "error", err)
			res.Attempted = i
			break
		}

		err := c.sender.Send(mail.Message{Recipient: addr, Day: day, SentAt: now})
		if err != nil {
			c.log.Errorw("Failed to send warm-up email",
				"batchID", batchID,
				"recipient", addr,
				"error", err)
			res.Failures = append(res.Failures, SendFailure{Recipient: addr, Err: err})
			continue
		}
		res.Sent++
	}

	c.rec.EmailsSentToday += res.Sent
	c.rec.TotalEmailsSent += res.Sent
	if err := c.store.Save(c.rec); err != nil {
		return nil, err
	}

	c.log.Infow("Warm-up pass finished",
		"batchID", batchID,
		"sent", res.Sent,
		"failed", len(res.Failures),
		"sentToday", c.rec.EmailsSentToday,
		"target", target)
	return res, nil
}

func (c *Controller) publishGauges(res *Result) {
	metrics.CurrentDay.Set(float64(c.rec.CurrentDay))
	metrics.DailyTargetVolume.Set(float64(res.Target))
	metrics.EmailsSentToday.Set(float64(c.rec.EmailsSentToday))
	metrics.TotalEmailsSent.Set(float64(c.rec.TotalEmailsSent))
}
