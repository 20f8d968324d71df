package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yksanjo/email-warmup-service/pkg/config"
	"github.com/yksanjo/email-warmup-service/pkg/metrics"
	"github.com/yksanjo/email-warmup-service/pkg/warmup"
)

// NewRunCommand executes a single warm-up pass.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a single warm-up pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			ctrl, err := newController(rt)
			if err != nil {
				return err
			}
			res, err := ctrl.RunDaily(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			printResult(rt, res)
			return nil
		},
	}
}

// NewContinuousCommand runs the daily-scheduled loop until interrupted.
func NewContinuousCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "continuous",
		Short: "Run continuously, firing one pass per day at the configured send time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			ctrl, err := newController(rt)
			if err != nil {
				return err
			}

			sendTime, err := config.ParseSendTime(rt.cfg.SendTime)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			metricsSrv := startMetricsServer(rt)
			if metricsSrv != nil {
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = metricsSrv.Shutdown(shutdownCtx)
				}()
			}

			sched := warmup.NewScheduler(ctrl, sendTime, rt.log)
			if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// startMetricsServer serves /metrics while continuous mode runs. Disabled
// when the bind address is empty or "0".
func startMetricsServer(rt *runtimeState) *http.Server {
	addr := rt.cfg.MetricsAddr
	if addr == "" || addr == "0" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		rt.log.Infow("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.log.Errorw("Metrics server failed", "error", err)
		}
	}()
	return srv
}
