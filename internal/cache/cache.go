// Package cache projects the shared configuration document onto a local
// file for consumers that cannot reach the database (e.g. the receiver's
// shell startup hook, which reads configuration with a JSON query tool).
// The cache file is derived and disposable: always safe to delete, never
// authoritative.
package cache

import (
	"fmt"

	"github.com/groblegark/confdb/internal/model"
	"github.com/groblegark/confdb/internal/store/file"
)

// Projector writes documents to a fixed local path in the same canonical
// JSON form the file backend uses, so a file-only consumer's parser works
// unchanged against either.
type Projector struct {
	path string
}

// New returns a projector targeting path.
func New(path string) *Projector {
	return &Projector{path: path}
}

// Path returns the cache file path.
func (p *Projector) Path() string {
	return p.path
}

// Project serializes doc and replaces the cache file atomically. The
// output is deterministic: projecting the same document twice produces
// byte-identical files, so mtime-independent change detection downstream
// does not fire spuriously.
func (p *Projector) Project(doc model.Document) error {
	data, err := model.EncodeDocument(doc)
	if err != nil {
		return err
	}
	if err := file.WriteAtomic(p.path, data); err != nil {
		return fmt.Errorf("write cache %s: %w", p.path, err)
	}
	return nil
}
