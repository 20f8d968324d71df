// Package config loads the process-wide warm-up configuration: defaults,
// then an optional YAML file, then environment variables. The SMTP password
// may also come from the OS keyring when absent from the environment.
package config
