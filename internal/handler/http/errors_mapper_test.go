// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-life-keeper/internal/app"
	"github.com/MKhiriev/go-life-keeper/internal/service"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestResponseFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"no user", service.ErrValidationNoUserID, http.StatusBadRequest, app.MsgNoUserIDProvided},
		{"validation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyTitle), http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
		{"name taken", store.ErrCategoryNameTaken, http.StatusConflict, app.MsgCategoryNameTaken},
		{"profile", fmt.Errorf("insert: %w", store.ErrProfileNotFound), http.StatusNotFound, app.MsgProfileNotFound},
		{"category", store.ErrCategoryNotFound, http.StatusNotFound, app.MsgCategoryNotFound},
		{"item", store.ErrItemNotFound, http.StatusNotFound, app.MsgItemNotFound},
		{"constraint", store.ErrConstraintViolation, http.StatusUnprocessableEntity, app.MsgConstraintViolation},
		{"nothing to update", store.ErrNothingToUpdate, http.StatusBadRequest, app.MsgNothingToUpdate},
		{"query failure", fmt.Errorf("%w: boom", store.ErrExecutingQuery), http.StatusInternalServerError, app.MsgInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := responseFromError(tt.err)
			assert.Equal(t, tt.wantStatus, got.status)
			assert.Equal(t, tt.wantMessage, got.message)
		})
	}
}
