// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	getKeyValue    = `SELECT value FROM kv_store WHERE key = ?;`
	upsertKeyValue = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`
	deleteKeyValue = `DELETE FROM kv_store WHERE key = ?;`
	listKeys       = `SELECT key FROM kv_store ORDER BY key;`
)

// sqliteKeyValueStore is the on-device [KeyValueStore] backed by the
// kv_store table.
type sqliteKeyValueStore struct {
	db *DB
}

// NewSQLiteKeyValueStore constructs a [KeyValueStore] over a migrated
// SQLite database.
func NewSQLiteKeyValueStore(db *DB) KeyValueStore {
	return &sqliteKeyValueStore{db: db}
}

func (s *sqliteKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getKeyValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, true, nil
}

func (s *sqliteKeyValueStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsertKeyValue, key, value); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteKeyValueStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteKeyValue, key); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteKeyValueStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, listKeys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0, 16)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return keys, nil
}
