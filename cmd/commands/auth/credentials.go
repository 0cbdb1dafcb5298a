package auth

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/services/auth"
	"nathanbeddoewebdev/nova-inventory/internal/util"
)

// credentialSpec describes the single secret a provider needs.
type credentialSpec struct {
	Provider    string
	DisplayName string

	// Prompt is the label shown when reading the secret interactively.
	Prompt string

	// PerAccount secrets are stored under "<provider>/<account>".
	PerAccount bool
}

var knownSpecs = []credentialSpec{
	{
		Provider:    config.ProviderOpenStack,
		DisplayName: "OpenStack",
		Prompt:      "Password",
		PerAccount:  true,
	},
	{
		Provider:    config.ProviderHetzner,
		DisplayName: "Hetzner",
		Prompt:      "API Token",
	},
}

// lookupSpec returns the credential spec for provider, or an error naming
// the supported providers.
func lookupSpec(provider string) (*credentialSpec, error) {
	normalized := util.NormalizeKey(provider)
	for i := range knownSpecs {
		if knownSpecs[i].Provider == normalized {
			return &knownSpecs[i], nil
		}
	}

	names := make([]string, 0, len(knownSpecs))
	for _, s := range knownSpecs {
		names = append(names, s.Provider)
	}
	return nil, fmt.Errorf("unknown provider %q (supported: %s)", provider, strings.Join(names, ", "))
}

// key builds the keychain key for account, which must be set for
// per-account providers.
func (s *credentialSpec) key(account string) (auth.Key, error) {
	account = strings.TrimSpace(account)
	if s.PerAccount && account == "" {
		return auth.Key{}, fmt.Errorf("%s secrets are stored per user, --account is required", s.DisplayName)
	}
	if !s.PerAccount {
		account = ""
	}
	return auth.Key{Provider: s.Provider, Account: account}, nil
}
