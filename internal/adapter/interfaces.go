// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's view of the hosted backend.
//
// [RemoteStore] decouples the sync engine from the transport. The package
// ships an HTTP/REST implementation over resty ([NewHTTPRemoteStore]) whose
// realtime feed is a websocket subscription.
//
// HTTP status codes are mapped to the sentinels in errors.go by mapHTTPError
// and transport failures are wrapped in [ErrNetwork], so callers branch with
// [errors.Is] without knowing the protocol.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-life-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// RemoteStore is the authenticated, row-scoped backend. Every call acts on
// behalf of the user the current token was issued for.
type RemoteStore interface {
	// SetToken stores the bearer token attached to every subsequent request.
	SetToken(token string)

	// Token returns the current bearer token or "".
	Token() string

	// UpsertProfile creates the caller's profile row if missing. Idempotent.
	UpsertProfile(ctx context.Context) (models.Profile, error)

	// ListCategories returns the caller's categories ordered by priority.
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateCategory inserts a category. [ErrConflict] signals a
	// case-insensitive name collision, [ErrUnprocessable] a constraint
	// violation and [ErrNotFound] a missing profile.
	CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error)

	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error)

	// DeleteCategory deletes a category together with its items.
	DeleteCategory(ctx context.Context, id string) error

	CountItemsInCategory(ctx context.Context, categoryID string) (int, error)

	ListItems(ctx context.Context) ([]models.Item, error)

	// CreateItems inserts a batch in one request and returns the rows the
	// backend accepted. Rejected rows are simply absent from the result.
	CreateItems(ctx context.Context, items []models.ItemInput) ([]models.Item, error)

	UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)

	// DeleteItems removes the listed items with one set-based request.
	DeleteItems(ctx context.Context, ids []string) error

	// Subscribe opens the realtime feed. onEvent is called from the
	// subscription goroutine for every change to the caller's rows until
	// the returned handle is closed or ctx is cancelled.
	Subscribe(ctx context.Context, onEvent func(models.ChangeEvent)) (Subscription, error)
}

// Subscription is a live realtime feed.
type Subscription interface {
	// Close stops delivery. Safe to call more than once.
	Close() error

	// Done is closed once the feed has stopped for any reason.
	Done() <-chan struct{}
}
