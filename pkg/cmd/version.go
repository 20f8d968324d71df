package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yksanjo/email-warmup-service/pkg/version"
)

// NewVersionCommand prints build metadata.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(rt.Writer(), version.Get())
			return nil
		},
	}
}
