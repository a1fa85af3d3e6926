// Package postgres implements the store.Store interface over a singleton
// row in a shared PostgreSQL database. This is the backend for
// multi-server deployments where every node must observe the same
// configuration.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/confdb/internal/model"
	"github.com/groblegark/confdb/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Projector receives every successfully loaded document so a local copy
// can be kept for consumers that cannot reach the database. A projection
// failure is logged and swallowed; it never fails the load that triggered
// it, since the read already succeeded against the authoritative store.
type Projector interface {
	Project(doc model.Document) error
}

// PostgresStore implements store.Store over the runtime_config singleton
// row. Concurrent saves resolve last-writer-wins at the row level; the
// version counter is diagnostic, not a concurrency-control token.
type PostgresStore struct {
	db        *sql.DB
	projector Projector
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and provisions the runtime_config schema
// if it is absent. Provisioning runs under the migration tool's advisory
// lock, so concurrent first use from multiple processes is safe.
// projector may be nil.
func New(databaseURL string, projector Projector) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w: %v", store.ErrUnavailable, err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db, projector: projector}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Load fetches the singleton document. On success the projector, if any,
// is handed the document so the local cache file tracks the store.
func (s *PostgresStore) Load(ctx context.Context) (model.Document, error) {
	doc, version, err := queryLoadConfig(ctx, s.db)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded configuration from database", "version", version)

	if s.projector != nil {
		if err := s.projector.Project(doc); err != nil {
			slog.Warn("failed to project configuration to cache file", "err", err)
		}
	}
	return doc, nil
}

// Save upserts the singleton row, bumping the version by exactly 1 and
// stamping updated_at/updated_by. The first save creates the row at
// version 1. Returns the new version.
func (s *PostgresStore) Save(ctx context.Context, doc model.Document, updatedBy string) (int64, error) {
	version, err := querySaveConfig(ctx, s.db, doc, updatedBy)
	if err != nil {
		return 0, err
	}
	slog.Info("saved configuration to database", "version", version, "updated_by", updatedBy)
	return version, nil
}

// Seed creates the singleton row from doc if and only if no row exists.
// Joining an existing cluster is a no-op: the stored content and version
// are left untouched. Returns whether the row was created.
func (s *PostgresStore) Seed(ctx context.Context, doc model.Document, updatedBy string) (bool, error) {
	return querySeedConfig(ctx, s.db, doc, updatedBy)
}

// VersionInfo returns metadata about the stored document without the
// document itself.
func (s *PostgresStore) VersionInfo(ctx context.Context) (*model.VersionInfo, error) {
	return queryVersionInfo(ctx, s.db)
}
