package warmup

import (
	"math"
	"time"

	"github.com/yksanjo/email-warmup-service/pkg/state"
)

// DailyVolume computes the target email volume for a given warm-up day.
// The curve eases in with exponent 1.5 so early days grow slowly and later
// days approach the target faster; at day == duration the result is exactly
// target. Days at or before zero send nothing. duration must be positive.
func DailyVolume(day, duration, initial, target int) int {
	if day <= 0 {
		return 0
	}
	progress := math.Min(1.0, float64(day)/float64(duration))
	volume := float64(initial) + float64(target-initial)*math.Pow(progress, 1.5)
	return int(volume)
}

// DayIndex derives the 1-based day index from the record's start date and
// the current time. When no start date is set the record's stored day is
// returned unchanged, supporting not-yet-started or externally seeded state.
func DayIndex(rec *state.Record, now time.Time) int {
	if rec.StartDate != nil {
		return int(now.Sub(*rec.StartDate)/(24*time.Hour)) + 1
	}
	return rec.CurrentDay
}
