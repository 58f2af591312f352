// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/models"
)

type profileService struct {
	repo   store.ProfileRepository
	logger *logger.Logger
}

func NewProfileService(repo store.ProfileRepository, logger *logger.Logger) ProfileService {
	return &profileService{repo: repo, logger: logger}
}

// Upsert is idempotent: calling it for an existing profile returns the
// stored row unchanged.
func (s *profileService) Upsert(ctx context.Context, userID string) (models.Profile, error) {
	if userID == "" {
		return models.Profile{}, ErrValidationNoUserID
	}
	return s.repo.UpsertProfile(ctx, userID)
}

func (s *profileService) Get(ctx context.Context, userID string) (models.Profile, error) {
	if userID == "" {
		return models.Profile{}, ErrValidationNoUserID
	}
	return s.repo.GetProfile(ctx, userID)
}
