package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/observability"
)

const fileExt = ".json"

// FileStore keeps one file per diagram in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store in dir.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "create %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file a diagram is stored in.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Get reads a stored diagram.
func (s *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if os.IsNotExist(err) {
		observability.Store().OnStoreMiss(ctx, "file")
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "read %s", name)
	}
	observability.Store().OnStoreHit(ctx, "file")
	return data, nil
}

// Put writes a diagram. The file is replaced atomically.
func (s *FileStore) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write %s", name)
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write %s", name)
	}
	observability.Store().OnStoreWrite(ctx, "file", len(data))
	return nil
}

// Delete removes a diagram file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if os.IsNotExist(err) {
		return notFound(name)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "delete %s", name)
	}
	return nil
}

// List returns the names of all stored diagrams.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "list %s", s.dir)
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), fileExt)
		if e.IsDir() || !ok || !ValidName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
