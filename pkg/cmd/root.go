package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yksanjo/email-warmup-service/pkg/config"
	"github.com/yksanjo/email-warmup-service/pkg/mail"
	"github.com/yksanjo/email-warmup-service/pkg/recipients"
	"github.com/yksanjo/email-warmup-service/pkg/state"
	"github.com/yksanjo/email-warmup-service/pkg/warmup"
)

// Config carries the injectable pieces of the root command, so tests can
// redirect output and point at scratch config files.
type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

type runtimeState struct {
	configPath string
	cfg        *config.Config
	debug      bool
	writer     io.Writer
	log        *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		OutputWriter: os.Stdout,
	}
}

// NewRootCommand builds the warmup CLI. Exactly one action runs per
// invocation; the bare root prints usage.
func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:           "warmup",
		Short:         "Email warm-up service",
		Long:          "Gradually ramps outbound email volume to build sender reputation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			rt.log = setupLogger(rt.debug).Sugar()

			// Commands that do not touch warm-up state skip config
			// loading and credential validation.
			switch cmd.Name() {
			case "version", "completion", "credentials", "store", "clear":
				return nil
			}

			loaded, err := config.Load(rt.configPath)
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			if loaded.Warmup.TargetVolume < loaded.Warmup.InitialVolume {
				rt.log.Warnw("Target volume below initial volume",
					"initialVolume", loaded.Warmup.InitialVolume,
					"targetVolume", loaded.Warmup.TargetVolume)
			}
			rt.cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to optional YAML config file (environment wins)")
	root.PersistentFlags().BoolVar(&rt.debug, "debug", false, "Enable debug level logging")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewStartCommand(),
		NewPauseCommand(),
		NewResumeCommand(),
		NewStatusCommand(),
		NewRunCommand(),
		NewContinuousCommand(),
		NewCredentialsCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

// newController wires store, recipients provider and mail sender into a
// warm-up controller from the loaded configuration.
func newController(rt *runtimeState) (*warmup.Controller, error) {
	if rt.cfg == nil {
		return nil, errors.New("config not loaded")
	}
	store := state.NewStore(rt.cfg.StateFile, rt.log)
	provider := recipients.New(rt.cfg, rt.log)
	sender := mail.NewSender(rt.cfg.Mail, rt.log)
	return warmup.New(rt.cfg, store, provider, sender, rt.log)
}

func setupLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(time.RFC3339))
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
