// Package auth stores provider secrets (OpenStack passwords, Hetzner API
// tokens) in the OS keychain so they do not have to live in nova.ini or
// the shell environment.
package auth

import (
	"errors"

	"nathanbeddoewebdev/nova-inventory/internal/util"
)

const ServiceName = "nova-inventory"

var ErrSecretNotFound = errors.New("secret not found")

// Key identifies one stored secret. Account is optional; OpenStack
// passwords are stored per username, Hetzner tokens per provider only.
type Key struct {
	Provider string
	Account  string
}

// String returns the keychain item name, "<provider>" or "<provider>/<account>".
func (k Key) String() string {
	provider := util.NormalizeKey(k.Provider)
	if k.Account == "" {
		return provider
	}
	return provider + "/" + k.Account
}

type Store interface {
	SetSecret(key Key, secret string) error
	GetSecret(key Key) (string, error)
	DeleteSecret(key Key) error
}

// DefaultStore returns the standard secret store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}
