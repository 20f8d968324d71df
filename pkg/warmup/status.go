package warmup

import (
	"time"
)

// Snapshot is a read-only projection of the warm-up progress. Computing it
// never mutates the record.
type Snapshot struct {
	Started bool
	Paused  bool

	Day          int
	DurationDays int
	// PercentElapsed is Day/DurationDays as a percentage.
	PercentElapsed float64

	TargetToday int
	SentToday   int
	TotalSent   int

	StartDate   *time.Time
	DaysElapsed int
}

// Status reports the current warm-up progress. The day shown is the last
// computed one; elapsed days are derived from the start date and now.
func (c *Controller) Status(now time.Time) Snapshot {
	snap := Snapshot{
		Started:      c.rec.Started,
		Paused:       c.rec.Paused,
		Day:          c.rec.CurrentDay,
		DurationDays: c.cfg.DurationDays,
		TargetToday:  DailyVolume(c.rec.CurrentDay, c.cfg.DurationDays, c.cfg.InitialVolume, c.cfg.TargetVolume),
		SentToday:    c.rec.EmailsSentToday,
		TotalSent:    c.rec.TotalEmailsSent,
		StartDate:    c.rec.StartDate,
	}
	if snap.DurationDays > 0 {
		snap.PercentElapsed = float64(snap.Day) / float64(snap.DurationDays) * 100
	}
	if c.rec.StartDate != nil {
		snap.DaysElapsed = int(now.Sub(*c.rec.StartDate) / (24 * time.Hour))
	}
	return snap
}
