// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/adapter"
	"github.com/MKhiriev/go-life-keeper/internal/utils"
	"github.com/MKhiriev/go-life-keeper/models"
	"golang.org/x/sync/errgroup"
)

const bulkUpdateConcurrency = 8

// CreateItem creates a single item. When the remote store is unreachable the
// item is kept locally under a local id, marked pending, and submitted by
// the next refresh.
func (s *clientSyncService) CreateItem(ctx context.Context, in models.ItemInput) (models.Item, error) {
	userID := s.UserID()
	if userID == "" {
		return models.Item{}, ErrNotAuthenticated
	}

	prepared, rejected := s.prepareItems(ctx, []models.ItemInput{in})
	if len(prepared) == 0 {
		return models.Item{}, rejected[0]
	}

	created, err := s.remote.CreateItems(ctx, prepared)
	if err != nil {
		if !adapter.IsNetworkError(err) {
			s.logger.Err(err).Str("func", "clientSyncService.CreateItem").Str("user_id", userID).
				Msg("error creating item")
			return models.Item{}, mapAdapterError(err)
		}

		item := localItem(userID, prepared[0])
		s.mu.Lock()
		if s.userID == userID {
			s.items = append(s.items, item)
			s.pendingItems[item.ID] = struct{}{}
			s.persistItemsLocked(ctx)
		}
		s.mu.Unlock()

		s.logger.Warn().Str("func", "clientSyncService.CreateItem").Str("item_id", item.ID).
			Msg("remote store unreachable, item kept locally")
		return item, nil
	}
	if len(created) == 0 {
		return models.Item{}, ErrItemRejected
	}

	s.appendItems(ctx, userID, created)
	return created[0], nil
}

// BulkCreateItems resolves every category reference, drops the items whose
// category cannot be resolved and submits the rest in one call. It returns
// the items the remote store accepted.
func (s *clientSyncService) BulkCreateItems(ctx context.Context, inputs []models.ItemInput) ([]models.Item, error) {
	userID := s.UserID()
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	prepared, _ := s.prepareItems(ctx, inputs)
	if len(prepared) == 0 {
		return []models.Item{}, nil
	}

	created, err := s.remote.CreateItems(ctx, prepared)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.BulkCreateItems").Str("user_id", userID).
			Int("count", len(prepared)).Msg("error creating items")
		return nil, mapAdapterError(err)
	}
	if len(created) < len(prepared) {
		s.logger.Warn().Str("func", "clientSyncService.BulkCreateItems").
			Int("submitted", len(prepared)).Int("accepted", len(created)).
			Msg("remote store rejected some items")
	}

	s.appendItems(ctx, userID, created)
	return created, nil
}

// prepareItems resolves category references and validates inputs. rejected
// holds the reason for every dropped input, in input order.
func (s *clientSyncService) prepareItems(ctx context.Context, inputs []models.ItemInput) (prepared []models.ItemInput, rejected []error) {
	s.mu.RLock()
	categories := s.categories
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}
	s.mu.RUnlock()

	prepared = make([]models.ItemInput, 0, len(inputs))
	for _, in := range inputs {
		ref := in.CategoryID
		in.CategoryID = s.mapper.Resolve(ref)
		if _, ok := known[in.CategoryID]; !ok {
			s.logger.Warn().Str("func", "clientSyncService.prepareItems").Str("category_ref", ref).
				Str("title", in.Title).Msg("dropping item with unresolved category")
			rejected = append(rejected, fmt.Errorf("%w: %q", ErrCategoryNotResolved, ref))
			continue
		}
		if in.Type == "" {
			in.Type = models.ItemTypeNote
		}
		if err := s.validator.Validate(ctx, in); err != nil {
			s.logger.Warn().Err(err).Str("func", "clientSyncService.prepareItems").Str("title", in.Title).
				Msg("dropping invalid item")
			rejected = append(rejected, fmt.Errorf("%w: %w", ErrItemRejected, err))
			continue
		}
		prepared = append(prepared, in)
	}
	return prepared, rejected
}

func (s *clientSyncService) appendItems(ctx context.Context, userID string, items []models.Item) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return
	}
	for _, it := range items {
		if idx := indexOfItem(s.items, it.ID); idx >= 0 {
			s.items[idx] = it
			continue
		}
		s.items = append(s.items, it)
	}
	s.persistItemsLocked(ctx)
}

// flushLocalItems submits items created while offline. Submitted items are
// replaced by the records the remote store returned; rejected ones are dropped.
func (s *clientSyncService) flushLocalItems(ctx context.Context, userID string) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.RLock()
	var (
		ids    []string
		inputs []models.ItemInput
	)
	for _, it := range s.items {
		if !isLocalItem(it.ID) {
			continue
		}
		ids = append(ids, it.ID)
		inputs = append(inputs, itemInput(it))
	}
	s.mu.RUnlock()

	if len(inputs) == 0 {
		return nil
	}

	created, err := s.remote.CreateItems(ctx, inputs)
	if err != nil {
		return mapAdapterError(err)
	}
	if len(created) < len(inputs) {
		s.logger.Warn().Str("func", "clientSyncService.flushLocalItems").
			Int("submitted", len(inputs)).Int("accepted", len(created)).
			Msg("remote store rejected some offline items")
	}

	submitted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		submitted[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	kept := s.items[:0:0]
	for _, it := range s.items {
		if _, ok := submitted[it.ID]; !ok {
			kept = append(kept, it)
		}
	}
	for _, it := range created {
		if idx := indexOfItem(kept, it.ID); idx >= 0 {
			kept[idx] = it
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	for id := range submitted {
		delete(s.pendingItems, id)
	}
	s.persistItemsLocked(ctx)
	return nil
}

// UpdateItem applies patch locally first, then remotely. A failed remote
// write leaves the local change in place and marks the item pending.
func (s *clientSyncService) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) error {
	userID := s.UserID()
	if userID == "" {
		return ErrNotAuthenticated
	}
	if patch.IsEmpty() {
		return nil
	}

	patch, err := s.preparePatch(ctx, patch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	idx := indexOfItem(s.items, id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.items[idx] = patch.Apply(s.items[idx])
	s.persistItemsLocked(ctx)
	s.mu.Unlock()

	if isLocalItem(id) {
		return nil
	}
	return s.pushItemUpdate(ctx, userID, id, patch)
}

// BulkUpdateItems applies every patch locally, then sends the updates
// concurrently. The result lists which ids were confirmed and which failed;
// the error is non-nil when any update failed.
func (s *clientSyncService) BulkUpdateItems(ctx context.Context, updates []models.ItemUpdate) (models.BulkUpdateResult, error) {
	result := models.BulkUpdateResult{Updated: []string{}, Failed: map[string]string{}}

	userID := s.UserID()
	if userID == "" {
		return result, ErrNotAuthenticated
	}

	type job struct {
		order int
		id    string
		patch models.ItemPatch
	}
	jobs := make([]job, 0, len(updates))

	s.mu.Lock()
	for i, u := range updates {
		patch, err := s.preparePatch(ctx, u.Patch)
		if err != nil {
			result.Failed[u.ID] = err.Error()
			continue
		}
		idx := indexOfItem(s.items, u.ID)
		if idx < 0 {
			result.Failed[u.ID] = ErrItemNotFound.Error()
			continue
		}
		s.items[idx] = patch.Apply(s.items[idx])
		jobs = append(jobs, job{order: i, id: u.ID, patch: patch})
	}
	s.persistItemsLocked(ctx)
	s.mu.Unlock()

	var (
		mu        sync.Mutex
		confirmed = make([]job, 0, len(jobs))
		g         errgroup.Group
	)
	g.SetLimit(bulkUpdateConcurrency)
	for _, j := range jobs {
		g.Go(func() error {
			var err error
			if !isLocalItem(j.id) {
				err = s.pushItemUpdate(ctx, userID, j.id, j.patch)
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[j.id] = err.Error()
				return nil
			}
			confirmed = append(confirmed, j)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(confirmed, func(a, b int) bool { return confirmed[a].order < confirmed[b].order })
	for _, j := range confirmed {
		result.Updated = append(result.Updated, j.id)
	}

	if !result.OK() {
		return result, fmt.Errorf("%w: %d of %d", ErrPartialBulkUpdate, len(result.Failed), len(updates))
	}
	return result, nil
}

// preparePatch resolves a category reference in patch. It does not lock.
func (s *clientSyncService) preparePatch(ctx context.Context, patch models.ItemPatch) (models.ItemPatch, error) {
	if patch.CategoryID != nil {
		resolved := s.mapper.Resolve(*patch.CategoryID)
		if !s.mapper.Known(resolved) {
			return patch, fmt.Errorf("%w: %q", ErrCategoryNotResolved, *patch.CategoryID)
		}
		patch.CategoryID = &resolved
	}
	if err := s.validator.Validate(ctx, patch); err != nil {
		return patch, fmt.Errorf("%w: %w", ErrItemRejected, err)
	}
	return patch, nil
}

func (s *clientSyncService) pushItemUpdate(ctx context.Context, userID, id string, patch models.ItemPatch) error {
	updated, err := s.remote.UpdateItem(ctx, id, patch)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.pushItemUpdate").Str("item_id", id).
			Msg("remote update failed, keeping local change")
		s.markPending(userID, models.TableItems, id)
		return mapAdapterError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	if idx := indexOfItem(s.items, id); idx >= 0 {
		s.items[idx] = updated
		s.persistItemsLocked(ctx)
	}
	delete(s.pendingItems, id)
	return nil
}

func (s *clientSyncService) DeleteItem(ctx context.Context, id string) error {
	return s.BulkDeleteItems(ctx, []string{id})
}

// BulkDeleteItems removes the items locally and deletes the remote ones in
// a single set-based call.
func (s *clientSyncService) BulkDeleteItems(ctx context.Context, ids []string) error {
	userID := s.UserID()
	if userID == "" {
		return ErrNotAuthenticated
	}
	if len(ids) == 0 {
		return nil
	}

	targets := make(map[string]struct{}, len(ids))
	remoteIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := targets[id]; dup {
			continue
		}
		targets[id] = struct{}{}
		if !isLocalItem(id) {
			remoteIDs = append(remoteIDs, id)
		}
	}

	s.mu.Lock()
	kept := s.items[:0:0]
	for _, it := range s.items {
		if _, ok := targets[it.ID]; !ok {
			kept = append(kept, it)
		}
	}
	s.items = kept
	for id := range targets {
		if isLocalItem(id) {
			delete(s.pendingItems, id)
		}
	}
	s.persistItemsLocked(ctx)
	s.mu.Unlock()

	if len(remoteIDs) == 0 {
		return nil
	}
	if err := s.remote.DeleteItems(ctx, remoteIDs); err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		s.logger.Err(err).Str("func", "clientSyncService.BulkDeleteItems").Int("count", len(remoteIDs)).
			Msg("remote delete failed")
		for _, id := range remoteIDs {
			s.markPending(userID, models.TableItems, id)
		}
		return mapAdapterError(err)
	}
	return nil
}

func indexOfItem(items []models.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func localItem(userID string, in models.ItemInput) models.Item {
	now := time.Now().UTC()
	return models.Item{
		ID:         utils.NewLocalID(localItemPrefix),
		UserID:     userID,
		Title:      in.Title,
		Text:       in.Text,
		Type:       in.Type,
		Completed:  in.Completed,
		CategoryID: in.CategoryID,
		DueDate:    in.DueDate,
		DateTime:   in.DateTime,
		Metadata:   in.Metadata,
		Attachment: in.Attachment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func itemInput(it models.Item) models.ItemInput {
	return models.ItemInput{
		Title:      it.Title,
		Text:       it.Text,
		Type:       it.Type,
		Completed:  it.Completed,
		CategoryID: it.CategoryID,
		DueDate:    it.DueDate,
		DateTime:   it.DateTime,
		Metadata:   it.Metadata,
		Attachment: it.Attachment,
	}
}
