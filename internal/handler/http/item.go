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

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.listItems")
	if !ok {
		return
	}

	items, err := h.services.ItemService.List(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listItems").Msg("error listing items")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// createItems accepts a JSON array and answers with the items that were
// stored, which may be fewer than submitted.
func (h *Handler) createItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r, "*Handler.createItems")
	if !ok {
		return
	}

	var items []models.ItemInput
	if err := utils.DecodeJSON(r, &items); err != nil {
		log.Err(err).Str("func", "*Handler.createItems").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if len(items) == 0 {
		http.Error(w, app.MsgNoItemsProvided, http.StatusBadRequest)
		return
	}

	created, err := h.services.ItemService.CreateItems(r.Context(), userID, items)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createItems").Int("submitted", len(items)).Msg("error creating items")
		writeError(w, err)
		return
	}

	log.Debug().Str("func", "*Handler.createItems").Int("submitted", len(items)).Int("created", len(created)).Send()
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r, "*Handler.updateItem")
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var patch models.ItemPatch
	if err := utils.DecodeJSON(r, &patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateItem").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	updated, err := h.services.ItemService.Update(r.Context(), userID, id, patch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateItem").Str("item_id", id).Msg("error updating item")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r, "*Handler.deleteItems")
	if !ok {
		return
	}

	var req models.DeleteItemsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.deleteItems").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, app.MsgNoIDsProvided, http.StatusBadRequest)
		return
	}

	deleted, err := h.services.ItemService.Delete(r.Context(), userID, req.IDs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteItems").Int("ids", len(req.IDs)).Msg("error deleting items")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: int(deleted)}, http.StatusOK)
}
