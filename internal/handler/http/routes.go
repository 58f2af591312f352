// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Get("/api/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// the websocket upgrade must see the raw response writer
		r.Get("/api/realtime", h.realtime)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)

			r.Get("/api/profile", h.getProfile)
			r.Put("/api/profile", h.upsertProfile)

			r.Route("/api/categories", func(r chi.Router) {
				r.Get("/", h.listCategories)
				r.Post("/", h.createCategory)
				r.Patch("/{id}", h.updateCategory)
				r.Delete("/{id}", h.deleteCategory)
				r.Get("/{id}/items/count", h.countCategoryItems)
			})

			r.Route("/api/items", func(r chi.Router) {
				r.Get("/", h.listItems)
				r.Post("/", h.createItems)
				r.Delete("/", h.deleteItems)
				r.Patch("/{id}", h.updateItem)
			})
		})
	})

	return router
}
