// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRow(rows *sqlmock.Rows, id, categoryID string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "u1", categoryID, "title "+id, "", "todo", false,
		nil, nil, []byte(`{"priority":"high"}`), nil, now, now)
}

// ── ListItems ──

func TestItemRepository_ListItems(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewItemRepository(db, logger.Nop())
	now := time.Now()

	rows := sqlmock.NewRows(itemColumns)
	itemRow(rows, "i1", "c1", now)
	itemRow(rows, "i2", "c2", now)

	mock.ExpectQuery("SELECT .* FROM items WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnRows(rows)

	items, err := repo.ListItems(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.ItemTypeTodo, items[0].Type)
	assert.Equal(t, models.ItemPriorityHigh, items[0].Metadata.Priority())
	assert.Nil(t, items[0].DueDate)
	assert.Nil(t, items[0].Attachment)
}

// ── CreateItems ──

func TestItemRepository_CreateItems_SkipsRejectedRows(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewItemRepository(db, logger.Nop())
	now := time.Now()

	input := []models.ItemInput{
		{Title: "a", Type: models.ItemTypeTodo, CategoryID: "c1"},
		{Title: "b", Type: models.ItemTypeTodo, CategoryID: "gone"},
		{Title: "c", Type: models.ItemTypeNote, CategoryID: "c1"},
	}

	prep := mock.ExpectPrepare("INSERT INTO items")
	prep.ExpectQuery().
		WithArgs("u1", "c1", "a", "", "todo", false, nil, nil, sqlmock.AnyArg(), nil).
		WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), "i1", "c1", now))
	prep.ExpectQuery().
		WithArgs("u1", "gone", "b", "", "todo", false, nil, nil, sqlmock.AnyArg(), nil).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))
	prep.ExpectQuery().
		WithArgs("u1", "c1", "c", "", "note", false, nil, nil, sqlmock.AnyArg(), nil).
		WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), "i3", "c1", now))

	created, err := repo.CreateItems(context.Background(), "u1", input)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "i1", created[0].ID)
	assert.Equal(t, "i3", created[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_CreateItems_Empty(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewItemRepository(db, logger.Nop())

	created, err := repo.CreateItems(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestItemRepository_CreateItems_PrepareError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewItemRepository(db, logger.Nop())

	mock.ExpectPrepare("INSERT INTO items").WillReturnError(errors.New("closed"))

	_, err := repo.CreateItems(context.Background(), "u1", []models.ItemInput{{Title: "a"}})
	assert.ErrorIs(t, err, ErrPreparingStatement)
}

// ── UpdateItem ──

func TestItemRepository_UpdateItem(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewItemRepository(db, logger.Nop())
	now := time.Now()
	completed := true

	mock.ExpectQuery(`UPDATE items SET completed = \$1, updated_at = NOW\(\) WHERE id = \$2 AND user_id = \$3`).
		WithArgs(true, "i1", "u1").
		WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), "i1", "c1", now))

	_, err := repo.UpdateItem(context.Background(), "u1", "i1", models.ItemPatch{Completed: &completed})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_UpdateItem_Errors(t *testing.T) {
	completed := true
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "missing row", err: sql.ErrNoRows, want: ErrItemNotFound},
		{name: "unknown category", err: pgError(pgerrcode.ForeignKeyViolation), want: ErrCategoryNotFound},
		{name: "bad type", err: pgError(pgerrcode.CheckViolation), want: ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewItemRepository(db, logger.Nop())
			mock.ExpectQuery("UPDATE items").WillReturnError(tt.err)

			_, err := repo.UpdateItem(context.Background(), "u1", "i1", models.ItemPatch{Completed: &completed})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── DeleteItems ──

func TestItemRepository_DeleteItems(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewItemRepository(db, logger.Nop())

	mock.ExpectExec(`DELETE FROM items WHERE id IN \(\$1,\$2\) AND user_id = \$3`).
		WithArgs("i1", "i2", "u1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteItems(context.Background(), "u1", []string{"i1", "i2"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestItemRepository_DeleteItems_NoIDs(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewItemRepository(db, logger.Nop())

	_, err := repo.DeleteItems(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}
