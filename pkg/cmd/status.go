package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewStatusCommand prints the warm-up progress without mutating state.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show warm-up status",
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

			snap := ctrl.Status(time.Now())
			w := rt.Writer()

			if !snap.Started {
				fmt.Fprintln(w, "Warm-up not started")
				return nil
			}

			stateLabel := "Active"
			if snap.Paused {
				stateLabel = "Paused"
			}

			fmt.Fprintln(w, strings.Repeat("=", 60))
			fmt.Fprintln(w, "EMAIL WARM-UP STATUS")
			fmt.Fprintln(w, strings.Repeat("=", 60))
			fmt.Fprintf(w, "Status: %s\n", stateLabel)
			fmt.Fprintf(w, "Day: %d/%d (%.1f%%)\n", snap.Day, snap.DurationDays, snap.PercentElapsed)
			fmt.Fprintf(w, "Emails sent today: %d/%d\n", snap.SentToday, snap.TargetToday)
			fmt.Fprintf(w, "Total emails sent: %d\n", snap.TotalSent)
			fmt.Fprintf(w, "Target volume today: %d emails\n", snap.TargetToday)
			if snap.StartDate != nil {
				fmt.Fprintf(w, "Started: %s (%d days ago)\n",
					snap.StartDate.Format("2006-01-02"), snap.DaysElapsed)
			}
			return nil
		},
	}
}
