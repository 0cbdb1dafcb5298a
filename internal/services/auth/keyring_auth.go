package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetSecret(key Key, secret string) error {
	return keyring.Set(k.serviceName, key.String(), secret)
}

func (k *KeyringStore) GetSecret(key Key) (string, error) {
	secret, err := keyring.Get(k.serviceName, key.String())
	switch {
	case err == nil:
		return secret, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrSecretNotFound
	default:
		return "", err
	}
}

func (k *KeyringStore) DeleteSecret(key Key) error {
	err := keyring.Delete(k.serviceName, key.String())
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrSecretNotFound
	}
	return err
}
