package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yksanjo/email-warmup-service/pkg/warmup"
)

// NewStartCommand initiates the warm-up and triggers the first pass.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the warm-up and run the first pass",
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

			fmt.Fprintln(rt.Writer(), "Email warm-up started")
			fmt.Fprintf(rt.Writer(), "  Duration: %d days\n", rt.cfg.Warmup.DurationDays)
			fmt.Fprintf(rt.Writer(), "  Initial volume: %d emails/day\n", rt.cfg.Warmup.InitialVolume)
			fmt.Fprintf(rt.Writer(), "  Target volume: %d emails/day\n", rt.cfg.Warmup.TargetVolume)

			res, err := ctrl.Start(cmd.Context(), time.Now())
			if errors.Is(err, warmup.ErrAlreadyStarted) {
				fmt.Fprintln(rt.Writer(), "Warm-up already started")
				return nil
			}
			if err != nil {
				return err
			}
			printResult(rt, res)
			return nil
		},
	}
}

// NewPauseCommand suspends sending until resume.
func NewPauseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the warm-up",
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
			if err := ctrl.Pause(); err != nil {
				return err
			}
			fmt.Fprintln(rt.Writer(), "Warm-up paused")
			return nil
		},
	}
}

// NewResumeCommand lifts a pause.
func NewResumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused warm-up",
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
			err = ctrl.Resume()
			if errors.Is(err, warmup.ErrNotStarted) {
				fmt.Fprintln(rt.Writer(), "Warm-up not started, use start to begin")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(rt.Writer(), "Warm-up resumed")
			return nil
		},
	}
}

func printResult(rt *runtimeState, res *warmup.Result) {
	switch res.Outcome {
	case warmup.OutcomeSent:
		fmt.Fprintf(rt.Writer(), "Sent %d of %d emails (day %d, target %d)\n",
			res.Sent, res.Attempted, res.Day, res.Target)
		for _, f := range res.Failures {
			fmt.Fprintf(rt.Writer(), "  failed: %s: %v\n", f.Recipient, f.Err)
		}
	case warmup.OutcomeQuotaReached:
		fmt.Fprintf(rt.Writer(), "Daily quota reached (%d emails)\n", res.Target)
	case warmup.OutcomeNoRecipients:
		fmt.Fprintln(rt.Writer(), "No recipients configured, add addresses to the recipients file")
	case warmup.OutcomeComplete:
		fmt.Fprintf(rt.Writer(), "Warm-up complete after %d days\n", res.Day-1)
	case warmup.OutcomePaused:
		fmt.Fprintln(rt.Writer(), "Warm-up is paused")
	case warmup.OutcomeNotStarted:
		fmt.Fprintln(rt.Writer(), "Warm-up not started, use start to begin")
	}
}
