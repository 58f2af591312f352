// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-life-keeper/models"
)

// CollectionState is the load state of one synchronized collection.
type CollectionState int

const (
	StateUninitialized CollectionState = iota
	StateLoading
	StateReady
)

func (s CollectionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// DataOperations is the write surface the migration engine needs from the
// synchronization engine.
type DataOperations interface {
	// Categories returns a snapshot of the categories known to the engine.
	Categories() []models.Category

	// CreateCategory creates one category and returns the stored record.
	CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error)

	// BulkCreateItems submits items in one batch and returns the accepted subset.
	BulkCreateItems(ctx context.Context, items []models.ItemInput) ([]models.Item, error)
}

// CategoryStore is the view of the engine the priority resolver works on.
type CategoryStore interface {
	Categories() []models.Category
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) error
}

// ClientSyncService is the synchronization engine. It owns the in-memory
// collections of the signed-in user, mirrors them into the local store and
// reconciles them with the remote store.
type ClientSyncService interface {
	DataOperations

	// Start binds the engine to userID, loads the local cache, refreshes from
	// the remote store and subscribes to change notifications. A failed
	// refresh or subscription is logged; the cached data stays usable.
	Start(ctx context.Context, userID, token string) error

	// Stop closes the realtime subscription. In-memory data is kept.
	Stop()

	// SignOut stops the engine and forgets the session and in-memory data.
	// The local cache partition of the user is kept.
	SignOut(ctx context.Context)

	// WipeLocalData removes the local cache partition of the current user.
	WipeLocalData(ctx context.Context)

	// RefreshData fetches both collections from the remote store. Without a
	// session it does nothing.
	RefreshData(ctx context.Context) error

	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) error
	DeleteCategory(ctx context.Context, id string) error
	CountItemsInCategory(ctx context.Context, categoryID string) (int, error)

	CreateItem(ctx context.Context, in models.ItemInput) (models.Item, error)
	UpdateItem(ctx context.Context, id string, patch models.ItemPatch) error
	BulkUpdateItems(ctx context.Context, updates []models.ItemUpdate) (models.BulkUpdateResult, error)
	DeleteItem(ctx context.Context, id string) error
	BulkDeleteItems(ctx context.Context, ids []string) error

	// Subscribe opens the realtime subscription, closing any existing one.
	Subscribe(ctx context.Context) error
	Unsubscribe()

	// Subscribed reports whether the realtime feed is currently open.
	Subscribed() bool

	Items() []models.Item
	CategoriesState() CollectionState
	ItemsState() CollectionState
	UserID() string

	// PendingConfirmation reports whether the last write to id failed
	// remotely and has not been confirmed by a refresh since.
	PendingConfirmation(id string) bool

	// Resolve maps a category reference to a category id.
	Resolve(ref string) string

	// OnCategoryCountChanged registers fn to be called with the category
	// count after every change to the category list. fn is called without
	// engine locks held.
	OnCategoryCountChanged(fn func(ctx context.Context, count int))
}

// ClientMigrationService moves legacy local-only data into the remote store.
type ClientMigrationService interface {
	// DetectLegacyData reads the legacy keys without modifying them.
	DetectLegacyData(ctx context.Context) models.LegacyData

	// HasLegacyData reports whether DetectLegacyData would find data.
	HasLegacyData(ctx context.Context) bool

	// Migrate transfers data through ops. It is a successful no-op when the
	// migration flag is already set or data is empty. Legacy keys are only
	// removed when every unit succeeded.
	Migrate(ctx context.Context, data models.LegacyData, ops DataOperations, progress func(models.MigrationProgress)) models.MigrationResult

	IsAlreadyMigrated(ctx context.Context) bool

	// RestoreFromBackup writes the backup back to the legacy keys and clears
	// the migration flag.
	RestoreFromBackup(ctx context.Context) error

	// ClearMigrationFlags removes the migration flag and the backup.
	ClearMigrationFlags(ctx context.Context)
}

// PriorityAssignment is the outcome of validating a priority entered by the user.
type PriorityAssignment struct {
	Value int

	// ConflictsWith is set when another category already holds Value.
	ConflictsWith *models.Category
	Warning       string
}

// Direction selects the neighbour for SwapAdjacent.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

// ClientPriorityService keeps category priorities unique and dense.
type ClientPriorityService interface {
	NextAvailablePriority() int
	ValidateAssignment(raw string, excludingID string) (PriorityAssignment, error)
	CommitWithReorder(ctx context.Context, id string, desired int) error
	SwapAdjacent(ctx context.Context, id string, direction Direction) error
	CompactAfterDeletion(ctx context.Context) error
	ObserveCategoryCount(ctx context.Context, count int)
}

// ClientSyncJob periodically refreshes the synchronization engine.
type ClientSyncJob interface {
	// Start stops any running job and refreshes every interval until ctx is
	// cancelled or Stop is called.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the running job and waits for it to exit.
	Stop()
}
