// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/mock"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCategoryService(t *testing.T) (CategoryService, *mock.MockCategoryRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCategoryRepository(ctrl)
	return NewCategoryService(repo, validators.NewLifeDataValidator(), logger.Nop()), repo
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCategoryService_Create_TrimsName(t *testing.T) {
	svc, repo := newTestCategoryService(t)
	ctx := context.Background()

	repo.EXPECT().
		CreateCategory(ctx, "u1", models.CategoryInput{Name: "Work", Priority: 1}).
		Return(models.Category{ID: "c1", Name: "Work", Priority: 1}, nil)

	got, err := svc.Create(ctx, "u1", models.CategoryInput{Name: "  Work ", Priority: 1})
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
}

func TestCategoryService_Create_Invalid(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	_, err := svc.Create(context.Background(), "u1", models.CategoryInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyCategoryName)
}

func TestCategoryService_Create_DuplicatePassesThrough(t *testing.T) {
	svc, repo := newTestCategoryService(t)

	repo.EXPECT().CreateCategory(gomock.Any(), "u1", gomock.Any()).
		Return(models.Category{}, store.ErrCategoryNameTaken)

	_, err := svc.Create(context.Background(), "u1", models.CategoryInput{Name: "work"})
	assert.ErrorIs(t, err, store.ErrCategoryNameTaken)
}

func TestCategoryService_NoUser(t *testing.T) {
	svc, _ := newTestCategoryService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	assert.ErrorIs(t, err, ErrValidationNoUserID)
	_, err = svc.Create(ctx, "", models.CategoryInput{Name: "x"})
	assert.ErrorIs(t, err, ErrValidationNoUserID)
	assert.ErrorIs(t, svc.Delete(ctx, "", "c1"), ErrValidationNoUserID)
	_, err = svc.CountItems(ctx, "", "c1")
	assert.ErrorIs(t, err, ErrValidationNoUserID)
}

// ── Update / Delete ──────────────────────────────────────────────────────────

func TestCategoryService_Update(t *testing.T) {
	svc, repo := newTestCategoryService(t)
	priority := 5

	repo.EXPECT().UpdateCategory(gomock.Any(), "u1", "c1", models.CategoryPatch{Priority: &priority}).
		Return(models.Category{ID: "c1", Priority: 5}, nil)

	got, err := svc.Update(context.Background(), "u1", "c1", models.CategoryPatch{Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Priority)
}

func TestCategoryService_Update_EmptyPatch(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	_, err := svc.Update(context.Background(), "u1", "c1", models.CategoryPatch{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCategoryService_DeleteAndCount(t *testing.T) {
	svc, repo := newTestCategoryService(t)
	ctx := context.Background()

	repo.EXPECT().CountItems(ctx, "u1", "c1").Return(3, nil)
	repo.EXPECT().DeleteCategory(ctx, "u1", "c1").Return(nil)

	n, err := svc.CountItems(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, svc.Delete(ctx, "u1", "c1"))
}
