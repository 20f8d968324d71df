package state

import "time"

// DateLayout is the calendar-date format used for LastResetDate.
const DateLayout = "2006-01-02"

// Record is the single persisted warm-up progress record. Field names are
// stable; fields absent from an older snapshot default to their zero value
// on load, so new fields can be added without a migration.
type Record struct {
	// Started is true once the warm-up has been initiated.
	Started bool `json:"started"`
	// StartDate is the timestamp of the start invocation, nil before start.
	StartDate *time.Time `json:"start_date"`
	// CurrentDay is the last computed 1-based day index.
	CurrentDay int `json:"current_day"`
	// EmailsSentToday counts sends toward today's quota.
	EmailsSentToday int `json:"emails_sent_today"`
	// TotalEmailsSent is the lifetime counter.
	TotalEmailsSent int `json:"total_emails_sent"`
	// Paused suspends sending when true.
	Paused bool `json:"paused"`
	// LastResetDate is the calendar date (DateLayout) on which
	// EmailsSentToday was last zeroed.
	LastResetDate string `json:"last_reset_date,omitempty"`
}

// ResetDailyCounter zeroes the daily counter and stamps the reset date.
// Returns true if a reset actually happened, i.e. the record had not been
// reset on that date yet.
func (r *Record) ResetDailyCounter(now time.Time) bool {
	today := now.Format(DateLayout)
	if r.LastResetDate == today {
		return false
	}
	r.EmailsSentToday = 0
	r.LastResetDate = today
	return true
}
