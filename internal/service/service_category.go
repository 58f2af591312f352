// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
	"github.com/MKhiriev/go-life-keeper/models"
)

type categoryService struct {
	repo      store.CategoryRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewCategoryService(repo store.CategoryRepository, validator validators.Validator, logger *logger.Logger) CategoryService {
	return &categoryService{repo: repo, validator: validator, logger: logger}
}

func (s *categoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	if userID == "" {
		return nil, ErrValidationNoUserID
	}
	return s.repo.ListCategories(ctx, userID)
}

// Create trims the name before validation so "  Work " and "Work" collide
// on the unique index.
func (s *categoryService) Create(ctx context.Context, userID string, in models.CategoryInput) (models.Category, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.Category{}, ErrValidationNoUserID
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(ctx, in); err != nil {
		log.Err(err).Str("func", "categoryService.Create").Str("user_id", userID).Msg("invalid category")
		return models.Category{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.repo.CreateCategory(ctx, userID, in)
}

func (s *categoryService) Update(ctx context.Context, userID, id string, patch models.CategoryPatch) (models.Category, error) {
	if userID == "" {
		return models.Category{}, ErrValidationNoUserID
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if err := s.validator.Validate(ctx, patch); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "categoryService.Update").
			Str("category_id", id).
			Msg("invalid category patch")
		return models.Category{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.repo.UpdateCategory(ctx, userID, id, patch)
}

func (s *categoryService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrValidationNoUserID
	}
	return s.repo.DeleteCategory(ctx, userID, id)
}

func (s *categoryService) CountItems(ctx context.Context, userID, categoryID string) (int, error) {
	if userID == "" {
		return 0, ErrValidationNoUserID
	}
	return s.repo.CountItems(ctx, userID, categoryID)
}
