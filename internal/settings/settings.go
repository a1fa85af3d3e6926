// Package settings is the process-wide accessor for the shared runtime
// configuration. It selects a storage backend once at construction and
// exposes an identical call surface regardless of which backend is active;
// the only caller-visible difference between backends is how quickly other
// nodes observe a write, never the shape of the document.
package settings

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/groblegark/confdb/internal/cache"
	"github.com/groblegark/confdb/internal/config"
	"github.com/groblegark/confdb/internal/model"
	"github.com/groblegark/confdb/internal/store"
	"github.com/groblegark/confdb/internal/store/file"
	"github.com/groblegark/confdb/internal/store/postgres"
)

// Manager wraps the selected backend. It performs no caching of its own:
// every Read re-reads the backend, so freshness is bounded by how often
// callers poll, and a failed read never silently returns stale data.
type Manager struct {
	backend store.Store
	mode    string
	who     string
}

// New builds a manager from process settings. In database mode the
// backend carries a cache projector targeting cfg.CacheFile, so every
// successful Read refreshes the local copy used by file-only consumers.
func New(cfg *config.Config) (*Manager, error) {
	m := &Manager{mode: cfg.Backend, who: defaultIdentity()}

	switch cfg.Backend {
	case config.BackendFile:
		m.backend = file.New(cfg.ConfigFile)
	case config.BackendDatabase:
		pg, err := postgres.New(cfg.DatabaseURL, cache.New(cfg.CacheFile))
		if err != nil {
			return nil, fmt.Errorf("connect database backend: %w", err)
		}
		m.backend = pg
	default:
		return nil, fmt.Errorf("unknown backend mode: %q", cfg.Backend)
	}

	return m, nil
}

// NewWithStore builds a manager over an already-constructed backend.
// Used by tests and by tools that assemble backends directly.
func NewWithStore(s store.Store, mode string) *Manager {
	return &Manager{backend: s, mode: mode, who: defaultIdentity()}
}

// defaultIdentity is the writer identity stamped on saves when the caller
// does not supply one.
func defaultIdentity() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}

// Mode returns the active backend mode ("file" or "database").
func (m *Manager) Mode() string {
	return m.mode
}

// Read returns the current configuration document. Errors from the
// backend propagate unchanged; there is no fallback to defaults or to
// previously seen data.
func (m *Manager) Read(ctx context.Context) (model.Document, error) {
	return m.backend.Load(ctx)
}

// Write persists doc, stamping updatedBy (the local hostname when empty).
// Returns the new version where the backend tracks one.
func (m *Manager) Write(ctx context.Context, doc model.Document, updatedBy string) (int64, error) {
	if updatedBy == "" {
		updatedBy = m.who
	}
	return m.backend.Save(ctx, doc, updatedBy)
}

// ReadRaw returns the document in its canonical textual form, for the
// configuration editor.
func (m *Manager) ReadRaw(ctx context.Context) (string, error) {
	doc, err := m.backend.Load(ctx)
	if err != nil {
		return "", err
	}
	data, err := model.EncodeDocument(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteRaw validates and persists editor-supplied JSON. The writer
// identity is suffixed with "(editor)" so the audit trail distinguishes
// editor writes from programmatic ones.
func (m *Manager) WriteRaw(ctx context.Context, raw []byte, updatedBy string) (int64, error) {
	doc, err := model.DecodeDocument(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrCorruptData, err)
	}
	if updatedBy == "" {
		updatedBy = m.who
	}
	if !strings.HasSuffix(updatedBy, "(editor)") {
		updatedBy += " (editor)"
	}
	return m.backend.Save(ctx, doc, updatedBy)
}

// VersionInfo returns stored-document metadata in database mode, nil in
// file mode (the file tracks no version).
func (m *Manager) VersionInfo(ctx context.Context) (*model.VersionInfo, error) {
	if pg, ok := m.backend.(*postgres.PostgresStore); ok {
		return pg.VersionInfo(ctx)
	}
	return nil, nil
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
