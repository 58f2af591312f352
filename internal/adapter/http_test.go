// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpRemoteStore {
	t.Helper()
	a, err := NewHTTPRemoteStore(serverURL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	a.SetToken("test-token")
	return a.(*httpRemoteStore)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: "https://api.example.com/", want: "https://api.example.com"},
		{in: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPRemoteStore_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteStore("", time.Second, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSetToken_Trims(t *testing.T) {
	a := newTestAdapter(t, "http://localhost")
	a.SetToken("  abc \n")
	assert.Equal(t, "abc", a.Token())
}

// ── Categories ──────────────────────────────────────────────────────────────

func TestListCategories_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/categories", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, []models.Category{{ID: "c1", Name: "Work", Priority: 0}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Work", got[0].Name)
}

func TestCreateCategory_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.CategoryInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Work", in.Name)

		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("category name already exists"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).CreateCategory(context.Background(), models.CategoryInput{Name: "Work"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUpdateCategory_PathAndBody(t *testing.T) {
	priority := 3
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/categories/c1", r.URL.Path)

		var patch models.CategoryPatch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		require.NotNil(t, patch.Priority)
		assert.Nil(t, patch.Name)

		writeJSON(t, w, http.StatusOK, models.Category{ID: "c1", Priority: *patch.Priority})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).UpdateCategory(context.Background(), "c1", models.CategoryPatch{Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Priority)
}

func TestCountItemsInCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories/c1/items/count", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.CountResponse{Count: 4})
	}))
	defer srv.Close()

	n, err := newTestAdapter(t, srv.URL).CountItemsInCategory(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

// ── Items ───────────────────────────────────────────────────────────────────

func TestCreateItems_ReturnsAcceptedSubset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in []models.ItemInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Len(t, in, 3)

		writeJSON(t, w, http.StatusCreated, []models.Item{{ID: "i1", Title: in[0].Title}, {ID: "i3", Title: in[2].Title}})
	}))
	defer srv.Close()

	created, err := newTestAdapter(t, srv.URL).CreateItems(context.Background(), []models.ItemInput{
		{Title: "a"}, {Title: "b"}, {Title: "c"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "c", created[1].Title)
}

func TestDeleteItems_SendsIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		var req models.DeleteItemsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"i1", "i2"}, req.IDs)
		writeJSON(t, w, http.StatusOK, models.CountResponse{Count: 2})
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).DeleteItems(context.Background(), []string{"i1", "i2"}))
}

func TestUpdateItem_Unprocessable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	completed := true
	_, err := newTestAdapter(t, srv.URL).UpdateItem(context.Background(), "i1", models.ItemPatch{Completed: &completed})
	assert.ErrorIs(t, err, ErrUnprocessable)
}

// ── Profile ─────────────────────────────────────────────────────────────────

func TestUpsertProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/profile", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.Profile{UserID: "u1"})
	}))
	defer srv.Close()

	p, err := newTestAdapter(t, srv.URL).UpsertProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
}

// ── Errors ──────────────────────────────────────────────────────────────────

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusUnprocessableEntity, ErrUnprocessable},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL).DeleteCategory(context.Background(), "c1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).DeleteCategory(context.Background(), "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestUnreachableServer_IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).ListItems(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, IsNetworkError(err))
}

func TestIsNetworkError_Patterns(t *testing.T) {
	assert.True(t, IsNetworkError(errors.New("dial tcp: lookup api: no such host")))
	assert.True(t, IsNetworkError(errors.New("TypeError: Failed to fetch")))
	assert.True(t, IsNetworkError(errors.New("read: connection reset by peer")))
	assert.False(t, IsNetworkError(errors.New("duplicate key")))
	assert.False(t, IsNetworkError(nil))
}
