package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yksanjo/email-warmup-service/pkg/config"
)

// NewCredentialsCommand manages the SMTP password in the OS keyring, as an
// alternative to exporting SMTP_PASSWORD.
func NewCredentialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the SMTP password in the OS keyring",
	}
	cmd.AddCommand(newCredentialsStoreCommand(), newCredentialsClearCommand())
	return cmd
}

func newCredentialsStoreCommand() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "store <smtp-user>",
		Short: "Store the SMTP password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("--password is required")
			}
			if err := config.StoreKeyringPassword(args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(rt.Writer(), "Stored SMTP password for %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "SMTP password to store")
	return cmd
}

func newCredentialsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <smtp-user>",
		Short: "Remove the stored SMTP password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			err = config.DeleteKeyringPassword(args[0])
			if errors.Is(err, config.ErrNoKeyringPassword) {
				fmt.Fprintf(rt.Writer(), "No stored password for %s\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.Writer(), "Removed SMTP password for %s\n", args[0])
			return nil
		},
	}
}
