// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
)

// MemoryDSN selects the in-process backend.
const MemoryDSN = ":memory:"

// Storages groups the client storage repositories into a single value that
// can be passed to the stores.
type Storages struct {
	// StateRepository persists store snapshots.
	StateRepository StateRepository

	db *DB
}

// NewStorages initialises the storage layer selected by cfg.DB.DSN:
//   - ":memory:" keeps state in process;
//   - a postgres:// or postgresql:// URL connects to PostgreSQL;
//   - anything else is a SQLite file path, created if missing.
//
// SQL backends are migrated before use.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("func", "NewStorages").Msg("creating new storages...")

	dsn := cfg.DB.DSN
	if dsn == "" || dsn == MemoryDSN {
		return &Storages{StateRepository: NewMemoryStateRepository()}, nil
	}

	var (
		db  *DB
		err error
	)
	if isPostgresDSN(dsn) {
		db, err = NewConnectPostgres(ctx, dsn, log)
	} else {
		db, err = NewConnectSQLite(ctx, dsn, log)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		StateRepository: NewStateRepository(db, log),
		db:              db,
	}, nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
