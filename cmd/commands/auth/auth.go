package auth

import (
	"nathanbeddoewebdev/nova-inventory/internal/services/auth"

	"github.com/spf13/cobra"
)

// newStore opens the secret store. Tests replace it with an in-memory store.
var newStore = auth.DefaultStore

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored provider secrets",
		Long: `Manage provider secrets kept in the OS keychain.

A password or token stored here is used whenever nova.ini and the
environment do not supply one.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
