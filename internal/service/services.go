// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-life-keeper/internal/config"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
	"github.com/MKhiriev/go-life-keeper/models"
)

// Services groups the backend use cases handed to the HTTP layer.
type Services struct {
	CategoryService CategoryService
	ItemService     ItemService
	ProfileService  ProfileService
	AuthService     AuthService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewLifeDataValidator()

	appInfo, err := NewAppInfoService(cfg.Version, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		CategoryService: NewCategoryService(storages.CategoryRepository, validator, logger),
		ItemService:     NewItemService(storages.ItemRepository, validator, logger),
		ProfileService:  NewProfileService(storages.ProfileRepository, logger),
		AuthService:     NewAuthService(cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration, logger),
		AppInfoService:  appInfo,
	}, nil
}
