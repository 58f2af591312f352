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

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{DB: db, logger: logger}
}

func (r *itemRepository) ListItems(ctx context.Context, userID string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListItemsQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	items := make([]models.Item, 0, 50)
	err = r.withRetry(ctx, func() error {
		items = items[:0]

		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			it, scanErr := scanItem(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			items = append(items, it)
		}
		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.ListItems").
			Str("user_id", userID).
			Msg("failed to list items")
		return nil, err
	}

	return items, nil
}

// CreateItems inserts every item with one prepared statement. The inserts
// run outside a transaction so a rejected row (unknown category, bad type)
// does not roll back the accepted ones. The accepted rows are returned in
// input order.
func (r *itemRepository) CreateItems(ctx context.Context, userID string, items []models.ItemInput) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	if len(items) == 0 {
		return []models.Item{}, nil
	}

	stmt, err := r.PrepareContext(ctx, insertItem)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.CreateItems").
			Str("user_id", userID).
			Msg("failed to prepare insert statement")
		return nil, fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	created := make([]models.Item, 0, len(items))
	for i, in := range items {
		metadata := in.Metadata
		if metadata == nil {
			metadata = models.Metadata{}
		}

		it, err := scanItem(stmt.QueryRowContext(ctx,
			userID, in.CategoryID, in.Title, in.Text, string(in.Type), in.Completed,
			nullTime(in.DueDate), nullTime(in.DateTime), metadata, in.Attachment,
		))
		if err != nil {
			log.Warn().Err(classifyWriteError(err, ErrCategoryNotFound)).
				Str("func", "itemRepository.CreateItems").
				Str("user_id", userID).
				Int("index", i).
				Str("category_id", in.CategoryID).
				Msg("item rejected")
			continue
		}
		created = append(created, it)
	}

	log.Debug().
		Str("func", "itemRepository.CreateItems").
		Int("submitted", len(items)).
		Int("accepted", len(created)).
		Msg("items inserted")

	return created, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, userID, id string, patch models.ItemPatch) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateItemQuery(userID, id, patch)
	if err != nil {
		if errors.Is(err, ErrNothingToUpdate) {
			return models.Item{}, err
		}
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanItem(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.UpdateItem").
			Str("user_id", userID).
			Str("item_id", id).
			Msg("failed to update item")
		return models.Item{}, classifyWriteError(err, ErrCategoryNotFound)
	}

	return updated, nil
}

func (r *itemRepository) DeleteItems(ctx context.Context, userID string, ids []string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteItemsQuery(userID, ids)
	if err != nil {
		return 0, err
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteItems").
			Str("user_id", userID).
			Int("ids", len(ids)).
			Msg("failed to delete items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return affected, nil
}
