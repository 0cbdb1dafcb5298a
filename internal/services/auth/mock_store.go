package auth

// MockStore is an in-memory secret store for testing.
type MockStore struct {
	secrets map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{secrets: make(map[string]string)}
}

func (m *MockStore) SetSecret(key Key, secret string) error {
	m.secrets[key.String()] = secret
	return nil
}

func (m *MockStore) GetSecret(key Key) (string, error) {
	secret, ok := m.secrets[key.String()]
	if !ok {
		return "", ErrSecretNotFound
	}
	return secret, nil
}

func (m *MockStore) DeleteSecret(key Key) error {
	if _, ok := m.secrets[key.String()]; !ok {
		return ErrSecretNotFound
	}
	delete(m.secrets, key.String())
	return nil
}
