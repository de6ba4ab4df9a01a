// Package store keeps diagram documents by name.
//
// Three backends implement [Store]:
//   - [FileStore]: one JSON file per diagram, for the CLI
//   - [RedisStore]: keys under a prefix, for the HTTP server
//   - [NullStore]: stores nothing, for tests or when storage is disabled
//
// Stores deal in encoded documents (see package io), not live diagrams, so
// any backend can hold any version of the format.
//
// Every lookup reports a hit or miss to [observability.Store].
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"regexp"

	"github.com/matzehuels/boxwire/pkg/errors"
)

// ErrNotFound is wrapped by every error for a missing diagram.
var ErrNotFound = stderrors.New("diagram not found")

// Store keeps diagram documents by name.
type Store interface {
	// Get returns the document stored under name, or an error wrapping
	// ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put stores a document, replacing any previous one.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a document. Missing names return ErrNotFound.
	Delete(ctx context.Context, name string) error

	// List returns every stored name in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]{0,127}$`)

// ValidName reports whether name can be used as a diagram name. Names are
// up to 128 letters, digits, dots, dashes and underscores and may not start
// with a dot or dash.
func ValidName(name string) bool { return nameRe.MatchString(name) }

func checkName(name string) error {
	if !ValidName(name) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid diagram name %q", name)
	}
	return nil
}

func notFound(name string) error {
	return errors.Wrap(errors.ErrCodeDiagramNotFound, ErrNotFound, "diagram %q", name)
}

// IsNotFound reports whether err is a missing-diagram error.
func IsNotFound(err error) bool { return stderrors.Is(err, ErrNotFound) }

// Hash computes a SHA-256 hash of a document, for ETags and change checks.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
