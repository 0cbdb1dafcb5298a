package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"nathanbeddoewebdev/nova-inventory/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/nova-inventory/cmd/commands/config"
	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/domain"
	"nathanbeddoewebdev/nova-inventory/internal/inventory"
	"nathanbeddoewebdev/nova-inventory/internal/logging"
	"nathanbeddoewebdev/nova-inventory/internal/providers"
	authstore "nathanbeddoewebdev/nova-inventory/internal/services/auth"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// options carries the inventory flags.
type options struct {
	list     bool
	host     string
	private  bool
	provider string
	config   string
	output   string
	timeout  time.Duration
	debug    bool
}

// deps are the collaborators the root command needs. Tests swap them out.
type deps struct {
	load    func(provider, path string) (*config.Descriptor, error)
	connect func(provider string) (providers.Connector, error)
}

func defaultDeps() deps {
	return deps{
		load: func(provider, path string) (*config.Descriptor, error) {
			return config.Load(provider, path, authstore.DefaultStore())
		},
		connect: providers.Get,
	}
}

// rootCmd represents the base command when called without any subcommands.
func rootCmd(d deps) *cobra.Command {
	var opts options

	var cmd = &cobra.Command{
		Use:   "nova-inventory",
		Short: "Ansible dynamic inventory for OpenStack Nova",
		Long: `nova-inventory is an Ansible dynamic inventory script. It lists the
servers of every configured region and prints them as JSON groups plus
per-host variables.

Groups: <region>, metadata "group" and comma separated "groups",
<prefix>_<key>_<value> for every metadata pair, instance-<id>,
flavor-<id>, image-<name> and image-<id>.

Credentials are read from the first nova.ini found (./nova.ini,
$NOVA_INI_PATH or ~/nova.ini, /etc/ansible/nova.ini) or from the
OS_* environment. Passwords and tokens may be kept in the OS keychain
instead, see "nova-inventory auth login".

Examples:
  ansible -i nova-inventory all -m ping
  nova-inventory --list
  nova-inventory --host web-1 --private
  nova-inventory --list --provider hetzner --output yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetDefaultStructuredLogger("nova-inventory", version, opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(cmd, d, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.list, "list", false, "List all servers, grouped")
	flags.StringVar(&opts.host, "host", "", "Show the variables of one server")
	flags.BoolVar(&opts.private, "private", false, "Use the private (fixed) address as ansible_ssh_host")
	flags.StringVar(&opts.provider, "provider", config.ProviderOpenStack, "Cloud provider (openstack, hetzner)")
	flags.StringVar(&opts.config, "config", "", "Path to nova.ini, searched before the default locations")
	flags.StringVarP(&opts.output, "output", "o", "json", "Output format (json, yaml)")
	flags.DurationVar(&opts.timeout, "timeout", 60*time.Second, "Deadline for the whole run")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log debug output to stderr")

	cmd.MarkFlagsMutuallyExclusive("list", "host")
	cmd.MarkFlagsOneRequired("list", "host")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())

	return cmd
}

func runInventory(cmd *cobra.Command, d deps, opts options) error {
	format, err := inventory.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	desc, err := d.load(opts.provider, opts.config)
	if err != nil {
		return err
	}

	connect, err := d.connect(desc.Provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	builder := inventory.NewBuilder(desc, connect, inventory.Options{UsePrivateAddress: opts.private})

	if opts.list {
		inv, err := builder.List(ctx)
		if err != nil {
			return describe(err)
		}
		return inventory.WriteList(cmd.OutOrStdout(), inv, format)
	}

	vars, err := builder.Host(ctx, opts.host)
	if err != nil {
		return describe(err)
	}
	return inventory.WriteHost(cmd.OutOrStdout(), vars, format)
}

// describe prefixes authentication failures with the message operators
// search for.
func describe(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fmt.Errorf("invalid credentials: %w", err)
	case errors.Is(err, domain.ErrForbidden):
		return fmt.Errorf("unable to authorize user: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("timed out: %w", err)
	default:
		return err
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterDefaults()

	root := rootCmd(defaultDeps())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
