// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-life-keeper/internal/app"
	"github.com/MKhiriev/go-life-keeper/internal/service"
	"github.com/MKhiriev/go-life-keeper/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrValidationNoUserID, errorResponse{http.StatusBadRequest, app.MsgNoUserIDProvided}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},

	{store.ErrNothingToUpdate, errorResponse{http.StatusBadRequest, app.MsgNothingToUpdate}},
	{store.ErrCategoryNameTaken, errorResponse{http.StatusConflict, app.MsgCategoryNameTaken}},
	{store.ErrProfileNotFound, errorResponse{http.StatusNotFound, app.MsgProfileNotFound}},
	{store.ErrCategoryNotFound, errorResponse{http.StatusNotFound, app.MsgCategoryNotFound}},
	{store.ErrItemNotFound, errorResponse{http.StatusNotFound, app.MsgItemNotFound}},
	{store.ErrConstraintViolation, errorResponse{http.StatusUnprocessableEntity, app.MsgConstraintViolation}},
}

func responseFromError(err error) errorResponse {
	for _, candidate := range errorResponses {
		if errors.Is(err, candidate.target) {
			return candidate.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError answers with the status and message mapped from err.
func writeError(w http.ResponseWriter, err error) {
	resp := responseFromError(err)
	http.Error(w, resp.message, resp.status)
}
