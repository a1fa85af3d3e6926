package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/groblegark/confdb/internal/model"
	"github.com/groblegark/confdb/internal/store"
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryLoadConfig(ctx context.Context, db executor) (model.Document, int64, error) {
	row := db.QueryRowContext(ctx,
		`SELECT config_data, version FROM runtime_config WHERE id = 1`)

	var (
		data    []byte
		version int64
	)
	if err := row.Scan(&data, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, fmt.Errorf("%w: no configuration row; seed the store first", store.ErrNotFound)
		}
		return nil, 0, fmt.Errorf("select config: %w: %v", store.ErrUnavailable, err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse config_data: %w: %v", store.ErrCorruptData, err)
	}
	return doc, version, nil
}

func querySaveConfig(ctx context.Context, db executor, doc model.Document, updatedBy string) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal document: %w", err)
	}

	row := db.QueryRowContext(ctx, `
		INSERT INTO runtime_config (id, config_data, version, updated_at, updated_by)
		VALUES (1, $1, 1, NOW(), $2)
		ON CONFLICT (id) DO UPDATE
		SET config_data = EXCLUDED.config_data,
		    version = runtime_config.version + 1,
		    updated_at = NOW(),
		    updated_by = EXCLUDED.updated_by
		RETURNING version`,
		data, updatedBy)

	var version int64
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("upsert config: %w: %v", store.ErrUnavailable, err)
	}
	return version, nil
}

func querySeedConfig(ctx context.Context, db executor, doc model.Document, updatedBy string) (bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO runtime_config (id, config_data, version, updated_by)
		VALUES (1, $1, 1, $2)
		ON CONFLICT (id) DO NOTHING`,
		data, updatedBy)
	if err != nil {
		return false, fmt.Errorf("seed config: %w: %v", store.ErrUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed config: %w", err)
	}
	return n > 0, nil
}

func queryVersionInfo(ctx context.Context, db executor) (*model.VersionInfo, error) {
	row := db.QueryRowContext(ctx,
		`SELECT version, updated_at, updated_by FROM runtime_config WHERE id = 1`)

	var info model.VersionInfo
	if err := row.Scan(&info.Version, &info.UpdatedAt, &info.UpdatedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no configuration row", store.ErrNotFound)
		}
		return nil, fmt.Errorf("select version info: %w: %v", store.ErrUnavailable, err)
	}
	return &info, nil
}
