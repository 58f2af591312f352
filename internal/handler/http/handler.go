// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/realtime"
	"github.com/MKhiriev/go-life-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	hub      *realtime.Hub

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *realtime.Hub, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		logger:   logger,
	}
}
