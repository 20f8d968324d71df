// Package cmd implements the warmup command surface: start, pause, resume,
// status, run, continuous, credentials and version.
package cmd
