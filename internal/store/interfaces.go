// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds persistence for both sides of go-life-keeper.
//
// Server side: Postgres repositories for profiles, categories and items,
// every query scoped by the owning user id, plus a LISTEN/NOTIFY listener
// that turns row changes into [models.ChangeEvent] values.
//
// Client side: a key/value store (SQLite or in-memory) and the
// user-partitioned [LocalStore] on top of it.
package store

import (
	"context"

	"github.com/MKhiriev/go-life-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CategoryRepository persists categories. All methods are scoped to userID.
type CategoryRepository interface {
	// ListCategories returns the user's categories ordered by priority.
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)

	// CreateCategory inserts a category. A case-insensitive name collision
	// yields [ErrCategoryNameTaken]; a missing profile yields
	// [ErrProfileNotFound].
	CreateCategory(ctx context.Context, userID string, in models.CategoryInput) (models.Category, error)

	// UpdateCategory applies patch to the category identified by id and
	// userID and returns the stored row.
	UpdateCategory(ctx context.Context, userID, id string, patch models.CategoryPatch) (models.Category, error)

	// DeleteCategory removes the category; its items are removed by cascade.
	DeleteCategory(ctx context.Context, userID, id string) error

	// CountItems returns how many items reference the category.
	CountItems(ctx context.Context, userID, categoryID string) (int, error)
}

// ItemRepository persists items. All methods are scoped to userID.
type ItemRepository interface {
	ListItems(ctx context.Context, userID string) ([]models.Item, error)

	// CreateItems inserts items one by one and returns those the database
	// accepted. Rejected rows are logged and skipped; an error is returned
	// only when nothing could be attempted.
	CreateItems(ctx context.Context, userID string, items []models.ItemInput) ([]models.Item, error)

	UpdateItem(ctx context.Context, userID, id string, patch models.ItemPatch) (models.Item, error)

	// DeleteItems removes the listed items and reports how many were removed.
	DeleteItems(ctx context.Context, userID string, ids []string) (int64, error)
}

// ProfileRepository persists the per-user profile row.
type ProfileRepository interface {
	// UpsertProfile creates the profile if missing and returns it.
	UpsertProfile(ctx context.Context, userID string) (models.Profile, error)
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
}

// KeyValueStore is the raw device-local key/value contract behind
// [LocalStore]. Get reports ok=false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
