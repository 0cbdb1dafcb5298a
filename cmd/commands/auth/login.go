package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Store a password or API token for a provider",
		Long: `Store a password or API token for a provider in the local keychain.

OpenStack passwords are stored per user; pass the username with --account.

Examples:
  nova-inventory auth login openstack --account demo
  nova-inventory auth login hetzner`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("account", "", "Account the secret belongs to (OpenStack username)")
	cmd.Flags().String("secret", "", "Secret value (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	spec, err := lookupSpec(args[0])
	if err != nil {
		return err
	}

	account, _ := cmd.Flags().GetString("account")
	key, err := spec.key(account)
	if err != nil {
		return err
	}

	secret, _ := cmd.Flags().GetString("secret")
	secret = strings.TrimSpace(secret)
	if secret == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Enter %s %s: ", spec.DisplayName, spec.Prompt)
		secret, err = readSecret(cmd.InOrStdin())
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
	}

	if secret == "" {
		return errors.New("secret cannot be empty")
	}

	if err := newStore().SetSecret(key, secret); err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved secret for %s\n", key)
	return nil
}

// readSecret reads without echo from a terminal, or one line otherwise.
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
