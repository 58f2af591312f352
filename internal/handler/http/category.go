// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-life-keeper/internal/app"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/utils"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.listCategories")
	if !ok {
		return
	}

	categories, err := h.services.CategoryService.List(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listCategories").Msg("error listing categories")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, categories, http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r, "*Handler.createCategory")
	if !ok {
		return
	}

	var in models.CategoryInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	created, err := h.services.CategoryService.Create(r.Context(), userID, in)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Str("name", in.Name).Msg("error creating category")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r, "*Handler.updateCategory")
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var patch models.CategoryPatch
	if err := utils.DecodeJSON(r, &patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateCategory").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	updated, err := h.services.CategoryService.Update(r.Context(), userID, id, patch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateCategory").Str("category_id", id).Msg("error updating category")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.deleteCategory")
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.services.CategoryService.Delete(r.Context(), userID, id); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteCategory").Str("category_id", id).
			Msg("error deleting category")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) countCategoryItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.countCategoryItems")
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	count, err := h.services.CategoryService.CountItems(r.Context(), userID, id)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.countCategoryItems").Str("category_id", id).
			Msg("error counting items")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}
