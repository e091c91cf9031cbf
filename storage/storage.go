// Package storage provides key-value persistence backends.
//
// Each backend stores opaque byte documents under short keys. The task store
// keeps its whole collection under one key; Bind adapts a single key to the
// task.Persistence interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned by Get when nothing is stored under a key.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidKey is returned for keys outside [a-z0-9_-].
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Provider is a key-value store of byte documents.
type Provider interface {
	// Get returns the document for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the document for key.
	Set(ctx context.Context, key string, data []byte) error

	// Close releases resources held by the provider.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the provider for backend rooted at dir.
func Open(backend, dir string) (Provider, error) {
	switch backend {
	case "", BackendDir:
		return NewDir(dir), nil
	case BackendSQLite:
		return OpenSQLite(dir)
	case BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

var keyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Binding exposes one key of a Provider as a load/save pair.
type Binding struct {
	provider Provider
	key      string
}

// Bind returns a Binding for key.
func Bind(provider Provider, key string) *Binding {
	return &Binding{provider: provider, key: key}
}

// Load returns the stored document, or nil when the key was never written.
func (b *Binding) Load(ctx context.Context) ([]byte, error) {
	data, err := b.provider.Get(ctx, b.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save replaces the stored document.
func (b *Binding) Save(ctx context.Context, data []byte) error {
	return b.provider.Set(ctx, b.key, data)
}
