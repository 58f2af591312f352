// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/migrations"
)

// Storages groups the backend repositories.
type Storages struct {
	CategoryRepository CategoryRepository
	ItemRepository     ItemRepository
	ProfileRepository  ProfileRepository

	db *DB
}

// NewStorages connects to Postgres, applies migrations and builds the
// repositories.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = migrations.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db), nil
}

// NewStoragesFromDB builds the repositories over an existing connection.
func NewStoragesFromDB(db *DB) *Storages {
	return &Storages{
		CategoryRepository: NewCategoryRepository(db, db.logger),
		ItemRepository:     NewItemRepository(db, db.logger),
		ProfileRepository:  NewProfileRepository(db, db.logger),
		db:                 db,
	}
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
