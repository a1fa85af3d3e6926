// Package file implements the store.Store interface over a single JSON
// document on a filesystem path. This is the default backend for
// standalone deployments.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/groblegark/confdb/internal/idgen"
	"github.com/groblegark/confdb/internal/model"
	"github.com/groblegark/confdb/internal/store"
)

// FileStore implements store.Store backed by a local JSON file. No version
// counter is tracked; the file's content and mtime are the only state.
type FileStore struct {
	path string
}

// Compile-time check that FileStore implements store.Store.
var _ store.Store = (*FileStore)(nil)

// New returns a file store for the document at path. The file is not
// touched until the first Load or Save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the configured document path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and parses the document from the configured path.
func (s *FileStore) Load(ctx context.Context) (model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, store.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w: %v", s.path, store.ErrUnavailable, err)
	}

	doc, err := model.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", s.path, store.ErrCorruptData, err)
	}
	return doc, nil
}

// Save serializes the document and replaces the file atomically, so a
// concurrent reader observes either the old or the new content, never a
// partial write. The version return is always 0; file mode does not track
// versions.
func (s *FileStore) Save(ctx context.Context, doc model.Document, updatedBy string) (int64, error) {
	data, err := model.EncodeDocument(doc)
	if err != nil {
		return 0, err
	}
	if err := WriteAtomic(s.path, data); err != nil {
		return 0, fmt.Errorf("write %s: %w: %v", s.path, store.ErrUnavailable, err)
	}
	return 0, nil
}

// Close is a no-op; the store holds no resources between calls.
func (s *FileStore) Close() error {
	return nil
}

// WriteAtomic writes data to path via a uniquely named temporary file in
// the same directory followed by a rename. Concurrent writers may race,
// but the winner's content lands intact. Also used by the cache projector.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	suffix, err := idgen.Suffix()
	if err != nil {
		return err
	}
	tmp := filepath.Join(dir, filepath.Base(path)+".tmp."+suffix)

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
