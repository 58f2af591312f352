// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/utils"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.getProfile")
	if !ok {
		return
	}

	profile, err := h.services.ProfileService.Get(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getProfile").Msg("error getting profile")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

// upsertProfile creates the profile row of the caller if it is missing.
func (h *Handler) upsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.upsertProfile")
	if !ok {
		return
	}

	profile, err := h.services.ProfileService.Upsert(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.upsertProfile").Msg("error upserting profile")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
