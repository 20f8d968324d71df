package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Defaults applied before the optional config file and environment are read.
const (
	DefaultSMTPHost       = "smtp.gmail.com"
	DefaultSMTPPort       = 587
	DefaultDurationDays   = 30
	DefaultInitialVolume  = 5
	DefaultTargetVolume   = 100
	DefaultStateFile      = "warmup_state.json"
	DefaultRecipientsFile = "recipients.txt"
	DefaultSendInterval   = 2 * time.Second
	DefaultSendTime       = "09:00"
	DefaultMetricsAddr    = ":8081"
)

// Mail holds the SMTP endpoint and credentials. The controller treats these
// as opaque; only the sender dials with them.
type Mail struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"-"`
}

// Warmup holds the volume-growth parameters.
type Warmup struct {
	DurationDays  int `yaml:"duration-days,omitempty"`
	InitialVolume int `yaml:"initial-volume,omitempty"`
	TargetVolume  int `yaml:"target-volume,omitempty"`
}

// Config is the immutable process-wide configuration, loaded once at startup
// and passed into the controller explicitly.
type Config struct {
	Mail   Mail   `yaml:"mail,omitempty"`
	Warmup Warmup `yaml:"warmup,omitempty"`

	StateFile      string `yaml:"state-file,omitempty"`
	RecipientsFile string `yaml:"recipients-file,omitempty"`
	RecipientsURL  string `yaml:"recipients-url,omitempty"`
	// SendInterval is env-only (WARMUP_SEND_INTERVAL); yaml.v2 cannot
	// decode duration strings.
	SendInterval time.Duration `yaml:"-"`
	SendTime     string        `yaml:"send-time,omitempty"`
	MetricsAddr  string        `yaml:"metrics-bind-address,omitempty"`
}

// Default returns the configuration before file and environment overrides.
func Default() Config {
	return Config{
		Mail: Mail{
			Host: DefaultSMTPHost,
			Port: DefaultSMTPPort,
		},
		Warmup: Warmup{
			DurationDays:  DefaultDurationDays,
			InitialVolume: DefaultInitialVolume,
			TargetVolume:  DefaultTargetVolume,
		},
		StateFile:      DefaultStateFile,
		RecipientsFile: DefaultRecipientsFile,
		SendInterval:   DefaultSendInterval,
		SendTime:       DefaultSendTime,
		MetricsAddr:    DefaultMetricsAddr,
	}
}

// Load assembles the configuration: defaults, then the optional YAML file at
// path (ignored when path is empty or the file does not exist), then
// environment variables, then the OS keyring for a missing SMTP password.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	if err := mergeEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Mail.Password == "" && cfg.Mail.User != "" {
		if pw, err := LookupKeyringPassword(cfg.Mail.User); err == nil {
			cfg.Mail.Password = pw
		}
	}

	return &cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func mergeEnv(cfg *Config) error {
	var err error
	cfg.Mail.Host = getEnvString("SMTP_HOST", cfg.Mail.Host)
	if cfg.Mail.Port, err = getEnvInt("SMTP_PORT", cfg.Mail.Port); err != nil {
		return err
	}
	cfg.Mail.User = getEnvString("SMTP_USER", cfg.Mail.User)
	cfg.Mail.Password = getEnvString("SMTP_PASSWORD", cfg.Mail.Password)

	if cfg.Warmup.DurationDays, err = getEnvInt("WARMUP_DURATION_DAYS", cfg.Warmup.DurationDays); err != nil {
		return err
	}
	if cfg.Warmup.InitialVolume, err = getEnvInt("INITIAL_VOLUME", cfg.Warmup.InitialVolume); err != nil {
		return err
	}
	if cfg.Warmup.TargetVolume, err = getEnvInt("TARGET_VOLUME", cfg.Warmup.TargetVolume); err != nil {
		return err
	}

	cfg.StateFile = getEnvString("WARMUP_STATE_FILE", cfg.StateFile)
	cfg.RecipientsFile = getEnvString("WARMUP_RECIPIENTS_FILE", cfg.RecipientsFile)
	cfg.RecipientsURL = getEnvString("WARMUP_RECIPIENTS_URL", cfg.RecipientsURL)
	if cfg.SendInterval, err = getEnvDuration("WARMUP_SEND_INTERVAL", cfg.SendInterval); err != nil {
		return err
	}
	cfg.SendTime = getEnvString("WARMUP_SEND_TIME", cfg.SendTime)
	cfg.MetricsAddr = getEnvString("METRICS_BIND_ADDRESS", cfg.MetricsAddr)
	return nil
}

// Validate checks the invariants that must hold before any state is touched.
// Errors here are fatal at startup.
func (c *Config) Validate() error {
	if c.Mail.User == "" || c.Mail.Password == "" {
		return errors.New("SMTP_USER and SMTP_PASSWORD must be set")
	}
	if c.Mail.Host == "" {
		return errors.New("SMTP_HOST must not be empty")
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("SMTP_PORT %d out of range", c.Mail.Port)
	}
	if c.Warmup.DurationDays <= 0 {
		return fmt.Errorf("WARMUP_DURATION_DAYS must be positive, got %d", c.Warmup.DurationDays)
	}
	if c.Warmup.InitialVolume < 0 {
		return fmt.Errorf("INITIAL_VOLUME must not be negative, got %d", c.Warmup.InitialVolume)
	}
	if c.Warmup.TargetVolume < 0 {
		return fmt.Errorf("TARGET_VOLUME must not be negative, got %d", c.Warmup.TargetVolume)
	}
	if _, err := ParseSendTime(c.SendTime); err != nil {
		return err
	}
	return nil
}

// ParseSendTime parses a HH:MM local wall-clock time.
func ParseSendTime(value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid send time %q, expected HH:MM: %w", value, err)
	}
	return t, nil
}

// getEnvString returns the value of an environment variable, or the provided default if not set.
func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of an environment variable as an int, or the
// provided default if not set. A set-but-unparsable value is an error rather
// than a silent fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}

// getEnvDuration returns the value of an environment variable as a duration.
// Plain integers are accepted as seconds for parity with the original
// service configuration.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return defaultVal, nil
	}
	val = strings.TrimSpace(val)
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return d, nil
}
