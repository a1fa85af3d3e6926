// Package store defines the persistence interface for the shared runtime
// configuration document and the error taxonomy common to all backends.
package store

import (
	"context"
	"errors"

	"github.com/groblegark/confdb/internal/model"
)

// Errors returned by Store implementations. Backends wrap these with
// fmt.Errorf("...: %w", ...); callers match with errors.Is.
var (
	// ErrNotFound means no configuration document exists yet. Recoverable
	// by seeding the store.
	ErrNotFound = errors.New("configuration not found")

	// ErrCorruptData means the stored document failed to parse. Fatal to
	// the calling operation; surfaced to the operator.
	ErrCorruptData = errors.New("configuration data is corrupt")

	// ErrUnavailable means the backing store could not be reached or the
	// I/O failed. The caller retries on its own schedule (next poll).
	ErrUnavailable = errors.New("configuration store unavailable")

	// ErrConflict is reserved for a future compare-and-swap save policy.
	// The current last-writer-wins save never returns it.
	ErrConflict = errors.New("configuration version conflict")
)

// Store is the capability set every configuration backend provides.
// Implementations are selected once per process and must be interchangeable
// without call-site changes: the shape of the returned document never
// depends on the backend, only its freshness semantics do.
type Store interface {
	// Load fetches the current document. Every call re-reads the backing
	// store; freshness is bounded by how often the caller polls.
	Load(ctx context.Context) (model.Document, error)

	// Save persists the document and records who wrote it. It returns the
	// new version where the backend tracks one, 0 otherwise. Concurrent
	// saves resolve last-writer-wins.
	Save(ctx context.Context, doc model.Document, updatedBy string) (int64, error)

	// Close releases backend resources.
	Close() error
}
