// Package vault persists the database passphrase in the OS credential store
// (Keychain on macOS, Secret Service on Linux, Credential Manager on
// Windows), addressed by a fixed (service, key) pair.
//
// Vault operations are single-attempt by design: they run on an interactive,
// operator-observed path, and the caller decides how to recover — typically
// by showing the secret to the operator for manual safekeeping.
package vault

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/akarpov87/budgetvault/internal/common"
)

// PassphraseKey is the fixed key under which the database passphrase is
// stored for the application's service namespace.
const PassphraseKey = "db-passphrase"

// SecretStore stores and retrieves named secrets.
//
// Get returns common.ErrSecretNotFound when no secret exists under key.
// Set failures wrap common.ErrVaultUnavailable.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, secret string) error
}

// KeyringStore is a SecretStore backed by the OS credential store.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the OS credential store under the given service
// name. Failure to open wraps common.ErrVaultUnavailable.
func NewKeyringStore(service string) (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrVaultUnavailable, err)
	}
	return &KeyringStore{ring: ring}, nil
}

func (s *KeyringStore) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", common.ErrSecretNotFound
		}
		return "", fmt.Errorf("%w: %v", common.ErrVaultUnavailable, err)
	}
	return string(item.Data), nil
}

func (s *KeyringStore) Set(key, secret string) error {
	err := s.ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(secret),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrVaultUnavailable, err)
	}
	return nil
}
