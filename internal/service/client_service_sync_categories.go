// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-life-keeper/internal/adapter"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
	"github.com/MKhiriev/go-life-keeper/models"
)

// CreateCategory validates the input against the in-memory list, makes sure
// the profile row exists, inserts the category remotely and adds the stored
// record to the local collection. A priority held by another category is
// replaced with the next free one.
func (s *clientSyncService) CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	userID := s.UserID()
	if userID == "" {
		return models.Category{}, ErrNotAuthenticated
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := validators.ValidateCategoryName(in.Name); err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrInvalidCategoryName, err)
	}

	s.mu.RLock()
	duplicate := hasCategoryName(s.categories, in.Name, "")
	if in.Priority < models.MinPriority || priorityHolder(s.categories, in.Priority, "") != nil {
		in.Priority = nextAvailablePriority(s.categories)
	}
	s.mu.RUnlock()

	if duplicate {
		return models.Category{}, fmt.Errorf("%w: %q", ErrDuplicateCategoryName, in.Name)
	}

	if _, err := s.remote.UpsertProfile(ctx); err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.CreateCategory").Str("user_id", userID).
			Msg("error ensuring profile")
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrOffline) || errors.Is(mapped, context.Canceled) {
			return models.Category{}, mapped
		}
		return models.Category{}, fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
	}

	created, err := s.remote.CreateCategory(ctx, in)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.CreateCategory").Str("user_id", userID).
			Str("name", in.Name).Msg("error creating category")
		return models.Category{}, mapAdapterError(err)
	}

	s.mu.Lock()
	if s.userID != userID {
		s.mu.Unlock()
		return created, nil
	}
	if idx := indexOfCategory(s.categories, created.ID); idx >= 0 {
		s.categories[idx] = created
	} else {
		s.categories = append(s.categories, created)
	}
	models.SortCategoriesByPriority(s.categories)
	s.persistCategoriesLocked(ctx)
	s.mapper.BuildMappings(s.categories)
	count := len(s.categories)
	s.mu.Unlock()

	s.notifyCategoryCount(ctx, count)
	return created, nil
}

// UpdateCategory applies patch locally first, then remotely. A failed remote
// write leaves the local change in place and marks the category pending.
func (s *clientSyncService) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) error {
	userID := s.UserID()
	if userID == "" {
		return ErrNotAuthenticated
	}
	if patch.IsEmpty() {
		return nil
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if err := validators.ValidateCategoryName(trimmed); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCategoryName, err)
		}
		patch.Name = &trimmed
	}
	if patch.Priority != nil && *patch.Priority < models.MinPriority {
		return fmt.Errorf("%w: %d", ErrPriorityOutOfRange, *patch.Priority)
	}

	s.mu.Lock()
	idx := indexOfCategory(s.categories, id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	if patch.Name != nil && hasCategoryName(s.categories, *patch.Name, id) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateCategoryName, *patch.Name)
	}
	s.categories[idx] = patch.Apply(s.categories[idx])
	models.SortCategoriesByPriority(s.categories)
	s.persistCategoriesLocked(ctx)
	if patch.Name != nil {
		s.mapper.BuildMappings(s.categories)
	}
	s.mu.Unlock()

	updated, err := s.remote.UpdateCategory(ctx, id, patch)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.UpdateCategory").Str("category_id", id).
			Msg("remote update failed, keeping local change")
		s.markPending(userID, models.TableCategories, id)
		return mapAdapterError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	if idx = indexOfCategory(s.categories, id); idx >= 0 {
		s.categories[idx] = updated
		models.SortCategoriesByPriority(s.categories)
		s.persistCategoriesLocked(ctx)
	}
	delete(s.pendingCategories, id)
	return nil
}

// CountItemsInCategory asks the remote store; when it is unreachable the
// local collection is counted instead.
func (s *clientSyncService) CountItemsInCategory(ctx context.Context, categoryID string) (int, error) {
	if s.UserID() == "" {
		return 0, ErrNotAuthenticated
	}

	count, err := s.remote.CountItemsInCategory(ctx, categoryID)
	if err == nil {
		return count, nil
	}
	if !adapter.IsNetworkError(err) {
		return 0, mapAdapterError(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return countItemsIn(s.items, categoryID), nil
}

// DeleteCategory removes the category and the items referencing it locally,
// then deletes it remotely, where the items are removed by cascade.
func (s *clientSyncService) DeleteCategory(ctx context.Context, id string) error {
	userID := s.UserID()
	if userID == "" {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	idx := indexOfCategory(s.categories, id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	removedItems := countItemsIn(s.items, id)

	s.categories = append(s.categories[:idx:idx], s.categories[idx+1:]...)
	kept := s.items[:0:0]
	for _, it := range s.items {
		if it.CategoryID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persistCategoriesLocked(ctx)
	s.persistItemsLocked(ctx)
	s.mapper.BuildMappings(s.categories)
	count := len(s.categories)
	s.mu.Unlock()

	s.logger.Info().Str("func", "clientSyncService.DeleteCategory").Str("category_id", id).
		Int("items", removedItems).Msg("deleting category with its items")

	s.notifyCategoryCount(ctx, count)

	if err := s.remote.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		s.logger.Err(err).Str("func", "clientSyncService.DeleteCategory").Str("category_id", id).
			Msg("remote delete failed")
		s.markPending(userID, models.TableCategories, id)
		return mapAdapterError(err)
	}
	return nil
}

func (s *clientSyncService) markPending(userID, table, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return
	}
	switch table {
	case models.TableCategories:
		s.pendingCategories[id] = struct{}{}
	case models.TableItems:
		s.pendingItems[id] = struct{}{}
	}
}

func indexOfCategory(categories []models.Category, id string) int {
	for i := range categories {
		if categories[i].ID == id {
			return i
		}
	}
	return -1
}

func hasCategoryName(categories []models.Category, name, excludingID string) bool {
	for _, c := range categories {
		if c.ID != excludingID && c.SameName(name) {
			return true
		}
	}
	return false
}

// priorityHolder returns the category other than excludingID holding priority.
func priorityHolder(categories []models.Category, priority int, excludingID string) *models.Category {
	for i := range categories {
		if categories[i].ID != excludingID && categories[i].Priority == priority {
			c := categories[i]
			return &c
		}
	}
	return nil
}

// nextAvailablePriority returns the lowest unused priority in the assignable
// range, or one past the highest priority when the range is full.
func nextAvailablePriority(categories []models.Category) int {
	used := make(map[int]struct{}, len(categories))
	highest := models.MinPriority - 1
	for _, c := range categories {
		used[c.Priority] = struct{}{}
		highest = max(highest, c.Priority)
	}
	for p := models.MinPriority; p <= models.MaxPriority; p++ {
		if _, taken := used[p]; !taken {
			return p
		}
	}
	return highest + 1
}

func countItemsIn(items []models.Item, categoryID string) int {
	n := 0
	for _, it := range items {
		if it.CategoryID == categoryID {
			n++
		}
	}
	return n
}
