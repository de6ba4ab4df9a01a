package store

import (
	"context"

	"github.com/matzehuels/boxwire/pkg/observability"
)

// NullStore is a no-op store that never keeps anything.
// Useful for testing or when storage should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Get always reports a missing diagram.
func (s *NullStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	observability.Store().OnStoreMiss(ctx, "null")
	return nil, notFound(name)
}

// Put discards the document.
func (s *NullStore) Put(ctx context.Context, name string, data []byte) error {
	return checkName(name)
}

// Delete always reports a missing diagram.
func (s *NullStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return notFound(name)
}

// List returns no names.
func (s *NullStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
