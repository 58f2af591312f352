// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
)

type profileRepository struct {
	*DB
	logger *logger.Logger
}

// NewProfileRepository constructs a [ProfileRepository] backed by db.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{DB: db, logger: logger}
}

// UpsertProfile is idempotent: an existing row is returned unchanged.
func (r *profileRepository) UpsertProfile(ctx context.Context, userID string) (models.Profile, error) {
	profile, err := scanProfile(r.QueryRowContext(ctx, upsertProfile, userID))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "profileRepository.UpsertProfile").
			Str("user_id", userID).
			Msg("failed to upsert profile")
		return models.Profile{}, classifyWriteError(err, ErrProfileNotFound)
	}
	return profile, nil
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	profile, err := scanProfile(r.QueryRowContext(ctx, getProfile, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return profile, nil
}
