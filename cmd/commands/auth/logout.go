package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/nova-inventory/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout <provider>",
		Short: "Remove a stored secret",
		Long: `Remove a stored password or API token from the keychain.

Example:
  nova-inventory auth logout openstack --account demo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := lookupSpec(args[0])
			if err != nil {
				return err
			}

			account, _ := cmd.Flags().GetString("account")
			key, err := spec.key(account)
			if err != nil {
				return err
			}

			switch err := newStore().DeleteSecret(key); {
			case errors.Is(err, auth.ErrSecretNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No secret stored for %s\n", key)
				return nil
			case err != nil:
				return fmt.Errorf("failed to remove secret: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed secret for %s\n", key)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("account", "", "Account the secret belongs to (OpenStack username)")

	return cmd
}
