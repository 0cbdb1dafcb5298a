package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/nova-inventory/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which providers have stored secrets",
		Long: `Show which providers have a secret in the keychain.

OpenStack secrets are per user and are only checked when --account is given.

Example:
  nova-inventory auth status --account demo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, _ := cmd.Flags().GetString("account")
			store := newStore()

			for _, spec := range knownSpecs {
				key, err := spec.key(account)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: unknown (pass --account)\n", spec.Provider)
					continue
				}

				_, err = store.GetSecret(key)
				switch {
				case err == nil:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", key)
				case errors.Is(err, auth.ErrSecretNotFound):
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", key)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", key, err)
				}
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("account", "", "OpenStack username to check")

	return cmd
}
