// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
)

// ClientStorages groups the device-local storage of the client.
type ClientStorages struct {
	KeyValue KeyValueStore
	Local    *LocalStore

	db *DB
}

// NewClientStorages opens the SQLite file at dsn. An empty dsn selects an
// in-memory store that lives as long as the process.
func NewClientStorages(ctx context.Context, dsn string, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new client storages...")

	if dsn == "" {
		kv := NewMemoryKeyValueStore()
		return &ClientStorages{KeyValue: kv, Local: NewLocalStore(kv, log)}, nil
	}

	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	kv := NewSQLiteKeyValueStore(db)
	return &ClientStorages{
		KeyValue: kv,
		Local:    NewLocalStore(kv, log),
		db:       db,
	}, nil
}

func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
