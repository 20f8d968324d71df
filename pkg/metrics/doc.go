// Package metrics defines the prometheus instrumentation for the warm-up
// service: per-host mail send counters, per-outcome pass counters and
// gauges mirroring the persisted warm-up record.
package metrics
