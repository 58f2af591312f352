// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
	"github.com/MKhiriev/go-life-keeper/models"
)

type itemService struct {
	repo      store.ItemRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewItemService(repo store.ItemRepository, validator validators.Validator, logger *logger.Logger) ItemService {
	return &itemService{repo: repo, validator: validator, logger: logger}
}

func (s *itemService) List(ctx context.Context, userID string) ([]models.Item, error) {
	if userID == "" {
		return nil, ErrValidationNoUserID
	}
	return s.repo.ListItems(ctx, userID)
}

func (s *itemService) CreateItems(ctx context.Context, userID string, items []models.ItemInput) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, ErrValidationNoUserID
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyItems)
	}

	valid := make([]models.ItemInput, 0, len(items))
	for i, in := range items {
		if err := s.validator.Validate(ctx, in); err != nil {
			log.Warn().Err(err).
				Str("func", "itemService.CreateItems").
				Str("user_id", userID).
				Int("index", i).
				Msg("skipping invalid item")
			continue
		}
		valid = append(valid, in)
	}
	if len(valid) == 0 {
		return []models.Item{}, nil
	}

	return s.repo.CreateItems(ctx, userID, valid)
}

func (s *itemService) Update(ctx context.Context, userID, id string, patch models.ItemPatch) (models.Item, error) {
	if userID == "" {
		return models.Item{}, ErrValidationNoUserID
	}
	if err := s.validator.Validate(ctx, patch); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "itemService.Update").
			Str("item_id", id).
			Msg("invalid item patch")
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.repo.UpdateItem(ctx, userID, id, patch)
}

func (s *itemService) Delete(ctx context.Context, userID string, ids []string) (int64, error) {
	if userID == "" {
		return 0, ErrValidationNoUserID
	}
	if err := s.validator.Validate(ctx, models.DeleteItemsRequest{IDs: ids}); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.repo.DeleteItems(ctx, userID, ids)
}
