package config

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/services/auth"

	"github.com/spf13/cobra"
)

// load resolves a descriptor. Tests replace it with a fixture.
var load = func(provider, path string) (*config.Descriptor, error) {
	return config.Load(provider, path, auth.DefaultStore())
}

// ShowCommand returns the "config show" command.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved connection settings",
		Long: "Print the connection settings an inventory run would use, with\n" +
			"secrets masked.\n\n" +
			"Examples:\n" +
			"  nova-inventory config show\n" +
			"  nova-inventory config show --provider hetzner --config ./nova.ini",
		Args:         cobra.NoArgs,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().String("provider", config.ProviderOpenStack, "Cloud provider (openstack, hetzner)")
	cmd.Flags().String("config", "", "Path to nova.ini, searched before the default locations")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	provider, _ := cmd.Flags().GetString("provider")
	path, _ := cmd.Flags().GetString("config")

	d, err := load(provider, path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "provider:\t%s\n", d.Provider)
	fmt.Fprintf(w, "source:\t%s\n", d.Source)
	fmt.Fprintf(w, "regions:\t%s\n", strings.Join(d.Regions, ","))
	fmt.Fprintf(w, "meta_prefix:\t%s\n", d.MetaPrefix)

	switch d.Provider {
	case config.ProviderHetzner:
		fmt.Fprintf(w, "token:\t%s\n", mask(d.Token))
	default:
		fmt.Fprintf(w, "username:\t%s\n", d.Username)
		fmt.Fprintf(w, "password:\t%s\n", mask(d.Password))
		fmt.Fprintf(w, "project_id:\t%s\n", d.ProjectID)
		fmt.Fprintf(w, "auth_url:\t%s\n", d.AuthURL)
		fmt.Fprintf(w, "domain_name:\t%s\n", d.DomainName)
		fmt.Fprintf(w, "service_type:\t%s\n", d.ServiceType)
		fmt.Fprintf(w, "auth_system:\t%s\n", d.AuthSystem)
		fmt.Fprintf(w, "insecure:\t%t\n", d.Insecure)
	}

	return w.Flush()
}

func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return "********"
}
