// Package sealed wraps a storage.KV so values are encrypted at rest with age.
package sealed

import (
	"fmt"

	"filippo.io/age"

	"github.com/dohr-michael/todo/internal/secrets"
	"github.com/dohr-michael/todo/internal/storage"
)

// Store encrypts on Put and decrypts on Get.
// Values written before encryption was enabled are returned as-is and
// sealed on their next write.
type Store struct {
	inner    storage.KV
	identity *age.X25519Identity
}

// New wraps inner with the given identity.
func New(inner storage.KV, identity *age.X25519Identity) *Store {
	return &Store{inner: inner, identity: identity}
}

func (s *Store) Get(key string) ([]byte, error) {
	data, err := s.inner.Get(key)
	if err != nil {
		return nil, err
	}
	if !secrets.IsSealed(data) {
		return data, nil
	}
	plain, err := secrets.Open(data, s.identity)
	if err != nil {
		return nil, fmt.Errorf("unseal %s: %w", key, err)
	}
	return plain, nil
}

func (s *Store) Put(key string, value []byte) error {
	blob, err := secrets.Seal(value, s.identity.Recipient())
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Put(key, blob)
}

func (s *Store) Delete(key string) error { return s.inner.Delete(key) }

func (s *Store) Close() error { return s.inner.Close() }
