// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-life-keeper/models"
)

// CategoryService is the backend use-case layer for categories. Every
// method acts on the rows of userID only.
type CategoryService interface {
	List(ctx context.Context, userID string) ([]models.Category, error)
	Create(ctx context.Context, userID string, in models.CategoryInput) (models.Category, error)
	Update(ctx context.Context, userID, id string, patch models.CategoryPatch) (models.Category, error)
	Delete(ctx context.Context, userID, id string) error
	CountItems(ctx context.Context, userID, categoryID string) (int, error)
}

// ItemService is the backend use-case layer for items.
type ItemService interface {
	List(ctx context.Context, userID string) ([]models.Item, error)

	// CreateItems stores every valid item and returns the accepted ones.
	// Invalid and database-rejected items are skipped.
	CreateItems(ctx context.Context, userID string, items []models.ItemInput) ([]models.Item, error)

	Update(ctx context.Context, userID, id string, patch models.ItemPatch) (models.Item, error)
	Delete(ctx context.Context, userID string, ids []string) (int64, error)
}

type ProfileService interface {
	Upsert(ctx context.Context, userID string) (models.Profile, error)
	Get(ctx context.Context, userID string) (models.Profile, error)
}

// AuthService issues and verifies the bearer tokens whose subject scopes
// every backend query.
type AuthService interface {
	CreateToken(ctx context.Context, userID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
