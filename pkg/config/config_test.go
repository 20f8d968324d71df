package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearWarmupEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD",
		"WARMUP_DURATION_DAYS", "INITIAL_VOLUME", "TARGET_VOLUME",
		"WARMUP_STATE_FILE", "WARMUP_RECIPIENTS_FILE", "WARMUP_RECIPIENTS_URL",
		"WARMUP_SEND_INTERVAL", "WARMUP_SEND_TIME", "METRICS_BIND_ADDRESS",
	} {
		// t.Setenv registers the restore; unset afterwards for a clean slate.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearWarmupEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSMTPHost, cfg.Mail.Host)
	assert.Equal(t, DefaultSMTPPort, cfg.Mail.Port)
	assert.Equal(t, DefaultDurationDays, cfg.Warmup.DurationDays)
	assert.Equal(t, DefaultInitialVolume, cfg.Warmup.InitialVolume)
	assert.Equal(t, DefaultTargetVolume, cfg.Warmup.TargetVolume)
	assert.Equal(t, DefaultStateFile, cfg.StateFile)
	assert.Equal(t, DefaultRecipientsFile, cfg.RecipientsFile)
	assert.Equal(t, DefaultSendInterval, cfg.SendInterval)
	assert.Equal(t, DefaultSendTime, cfg.SendTime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearWarmupEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "warmup@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("WARMUP_DURATION_DAYS", "14")
	t.Setenv("INITIAL_VOLUME", "2")
	t.Setenv("TARGET_VOLUME", "40")
	t.Setenv("WARMUP_SEND_INTERVAL", "5s")
	t.Setenv("WARMUP_SEND_TIME", "07:30")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "warmup@example.com", cfg.Mail.User)
	assert.Equal(t, "secret", cfg.Mail.Password)
	assert.Equal(t, 14, cfg.Warmup.DurationDays)
	assert.Equal(t, 2, cfg.Warmup.InitialVolume)
	assert.Equal(t, 40, cfg.Warmup.TargetVolume)
	assert.Equal(t, 5*time.Second, cfg.SendInterval)
	assert.Equal(t, "07:30", cfg.SendTime)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PlainSecondsInterval(t *testing.T) {
	clearWarmupEnv(t)
	t.Setenv("WARMUP_SEND_INTERVAL", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.SendInterval)
}

func TestLoad_InvalidIntEnv(t *testing.T) {
	clearWarmupEnv(t)
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	clearWarmupEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `mail:
  host: smtp.file.example
  port: 465
  user: file@example.com
warmup:
  duration-days: 60
  target-volume: 200
send-time: "06:00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SMTP_HOST", "smtp.env.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Environment wins over the file; the file wins over defaults.
	assert.Equal(t, "smtp.env.example", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, "file@example.com", cfg.Mail.User)
	assert.Equal(t, 60, cfg.Warmup.DurationDays)
	assert.Equal(t, 200, cfg.Warmup.TargetVolume)
	assert.Equal(t, DefaultInitialVolume, cfg.Warmup.InitialVolume)
	assert.Equal(t, "06:00", cfg.SendTime)
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	clearWarmupEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSMTPHost, cfg.Mail.Host)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Mail.User = "warmup@example.com"
	valid.Mail.Password = "secret"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing credentials",
			mutate:  func(c *Config) { c.Mail.Password = "" },
			wantErr: "SMTP_USER and SMTP_PASSWORD",
		},
		{
			name:    "missing user",
			mutate:  func(c *Config) { c.Mail.User = "" },
			wantErr: "SMTP_USER and SMTP_PASSWORD",
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Mail.Host = "" },
			wantErr: "SMTP_HOST",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Mail.Port = 70000 },
			wantErr: "SMTP_PORT",
		},
		{
			name:    "zero duration",
			mutate:  func(c *Config) { c.Warmup.DurationDays = 0 },
			wantErr: "WARMUP_DURATION_DAYS",
		},
		{
			name:    "negative initial volume",
			mutate:  func(c *Config) { c.Warmup.InitialVolume = -1 },
			wantErr: "INITIAL_VOLUME",
		},
		{
			name:    "bad send time",
			mutate:  func(c *Config) { c.SendTime = "9 o'clock" },
			wantErr: "invalid send time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseSendTime(t *testing.T) {
	parsed, err := ParseSendTime("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, parsed.Hour())
	assert.Equal(t, 0, parsed.Minute())

	_, err = ParseSendTime("25:61")
	assert.Error(t, err)
}
