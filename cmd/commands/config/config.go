package config

import (
	"nathanbeddoewebdev/nova-inventory/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect nova-inventory configuration",
		Long: "Inspect the settings nova-inventory resolves from nova.ini,\n" +
			"the environment and the keychain.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(ShowCommand())

	return cmd
}
