package vault

import "github.com/akarpov87/budgetvault/internal/common"

// MemoryStore is a map-backed SecretStore for tests and for environments
// without a usable OS credential store.
type MemoryStore struct {
	secrets map[string]string

	// FailSet, when non-nil, is returned from Set to simulate an
	// unavailable vault.
	FailSet error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{secrets: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	secret, ok := s.secrets[key]
	if !ok {
		return "", common.ErrSecretNotFound
	}
	return secret, nil
}

func (s *MemoryStore) Set(key, secret string) error {
	if s.FailSet != nil {
		return s.FailSet
	}
	s.secrets[key] = secret
	return nil
}
