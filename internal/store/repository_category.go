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

// categoryRepository is the PostgreSQL-backed implementation of
// [CategoryRepository].
type categoryRepository struct {
	*DB
	logger *logger.Logger
}

// NewCategoryRepository constructs a [CategoryRepository] backed by db.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{DB: db, logger: logger}
}

func (r *categoryRepository) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCategoriesQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var categories []models.Category
	err = r.withRetry(ctx, func() error {
		categories = categories[:0]

		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			c, scanErr := scanCategory(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			categories = append(categories, c)
		}
		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.ListCategories").
			Str("user_id", userID).
			Msg("failed to list categories")
		return nil, err
	}

	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// CreateCategory inserts a category and returns the stored row.
//
// Error handling:
//   - unique_violation on (user_id, lower(name)) → [ErrCategoryNameTaken]
//   - foreign_key_violation on profiles → [ErrProfileNotFound]
//   - check / not-null violation → [ErrConstraintViolation]
func (r *categoryRepository) CreateCategory(ctx context.Context, userID string, in models.CategoryInput) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertCategoryQuery(userID, in)
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanCategory(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.CreateCategory").
			Str("user_id", userID).
			Str("name", in.Name).
			Msg("failed to insert category")
		return models.Category{}, classifyWriteError(err, ErrProfileNotFound)
	}

	return created, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, userID, id string, patch models.CategoryPatch) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCategoryQuery(userID, id, patch)
	if err != nil {
		if errors.Is(err, ErrNothingToUpdate) {
			return models.Category{}, err
		}
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanCategory(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.UpdateCategory").
			Str("user_id", userID).
			Str("category_id", id).
			Msg("failed to update category")
		return models.Category{}, classifyWriteError(err, ErrCategoryNotFound)
	}

	return updated, nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCategoryQuery(userID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.DeleteCategory").
			Str("user_id", userID).
			Str("category_id", id).
			Msg("failed to delete category")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) CountItems(ctx context.Context, userID, categoryID string) (int, error) {
	query, args, err := buildCountItemsQuery(userID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	err = r.withRetry(ctx, func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "categoryRepository.CountItems").
			Str("category_id", categoryID).
			Msg("failed to count items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
