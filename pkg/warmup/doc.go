// Package warmup implements the core of the email warm-up service: the
// volume-growth curve and the daily-quota state machine that decides, given
// the persisted record and wall-clock time, how many emails to send now and
// how to update the counters afterwards.
package warmup
