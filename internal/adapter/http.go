// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/utils"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpRemoteStore struct {
	client  *utils.HTTPClient
	baseURL string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs the REST implementation of [RemoteStore].
// address may omit the scheme, in which case http is assumed.
func NewHTTPRemoteStore(address string, timeout time.Duration, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpRemoteStore{client: utils.NewHTTPClient(baseURL, timeout), baseURL: baseURL, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore].
func (h *httpRemoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore].
func (h *httpRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// UpsertProfile implements [RemoteStore] via PUT /api/profile.
func (h *httpRemoteStore) UpsertProfile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile

	resp, err := h.authedRequest(ctx).
		SetResult(&profile).
		Put("/api/profile")
	if err != nil {
		return models.Profile{}, mapTransportError("upsert profile request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// ListCategories implements [RemoteStore] via GET /api/categories.
func (h *httpRemoteStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)

	resp, err := h.authedRequest(ctx).
		SetResult(&categories).
		Get("/api/categories")
	if err != nil {
		return nil, mapTransportError("list categories request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return categories, nil
}

// CreateCategory implements [RemoteStore] via POST /api/categories.
func (h *httpRemoteStore) CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	var created models.Category

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		SetResult(&created).
		Post("/api/categories")
	if err != nil {
		return models.Category{}, mapTransportError("create category request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	return created, nil
}

// UpdateCategory implements [RemoteStore] via PATCH /api/categories/{id}.
func (h *httpRemoteStore) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error) {
	var updated models.Category

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(patch).
		SetResult(&updated).
		Patch("/api/categories/{id}")
	if err != nil {
		return models.Category{}, mapTransportError("update category request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	return updated, nil
}

// DeleteCategory implements [RemoteStore] via DELETE /api/categories/{id}.
func (h *httpRemoteStore) DeleteCategory(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete("/api/categories/{id}")
	if err != nil {
		return mapTransportError("delete category request", err)
	}

	return mapHTTPError(resp)
}

// CountItemsInCategory implements [RemoteStore] via
// GET /api/categories/{id}/items/count.
func (h *httpRemoteStore) CountItemsInCategory(ctx context.Context, categoryID string) (int, error) {
	var count models.CountResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", categoryID).
		SetResult(&count).
		Get("/api/categories/{id}/items/count")
	if err != nil {
		return 0, mapTransportError("count items request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return count.Count, nil
}

// ListItems implements [RemoteStore] via GET /api/items.
func (h *httpRemoteStore) ListItems(ctx context.Context) ([]models.Item, error) {
	items := make([]models.Item, 0)

	resp, err := h.authedRequest(ctx).
		SetResult(&items).
		Get("/api/items")
	if err != nil {
		return nil, mapTransportError("list items request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// CreateItems implements [RemoteStore] via POST /api/items.
func (h *httpRemoteStore) CreateItems(ctx context.Context, items []models.ItemInput) ([]models.Item, error) {
	created := make([]models.Item, 0, len(items))

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(items).
		SetResult(&created).
		Post("/api/items")
	if err != nil {
		return nil, mapTransportError("create items request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	h.logger.Debug().
		Str("func", "httpRemoteStore.CreateItems").
		Int("submitted", len(items)).
		Int("accepted", len(created)).
		Msg("items created")

	return created, nil
}

// UpdateItem implements [RemoteStore] via PATCH /api/items/{id}.
func (h *httpRemoteStore) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	var updated models.Item

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(patch).
		SetResult(&updated).
		Patch("/api/items/{id}")
	if err != nil {
		return models.Item{}, mapTransportError("update item request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	return updated, nil
}

// DeleteItems implements [RemoteStore] via DELETE /api/items.
func (h *httpRemoteStore) DeleteItems(ctx context.Context, ids []string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.DeleteItemsRequest{IDs: ids}).
		Delete("/api/items")
	if err != nil {
		return mapTransportError("delete items request", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
