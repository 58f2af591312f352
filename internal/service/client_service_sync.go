// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/adapter"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/internal/utils"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
	"github.com/MKhiriev/go-life-keeper/models"
	"golang.org/x/sync/errgroup"
)

const (
	localItemPrefix = "item"

	defaultRealtimeRefetchTimeout = 15 * time.Second
)

// SyncOptions configures optional engine behaviour.
type SyncOptions struct {
	// ProvisionDefaults creates DefaultCategories for a user that has no
	// categories remotely and no legacy data on the device.
	ProvisionDefaults bool
	DefaultCategories []models.CategoryInput

	// HasLegacyData reports legacy data awaiting migration. Nil means none.
	HasLegacyData func(ctx context.Context) bool

	RealtimeRefetchTimeout time.Duration
}

// DefaultCategories are the starter categories offered to new users.
var DefaultCategories = []models.CategoryInput{
	{Name: "Health & Fitness", Icon: "dumbbell", Color: "#22c55e", Priority: 0},
	{Name: "Work & Career", Icon: "briefcase", Color: "#3b82f6", Priority: 1},
	{Name: "Personal Growth", Icon: "sprout", Color: "#a855f7", Priority: 2},
	{Name: "Family & Friends", Icon: "users", Color: "#f97316", Priority: 3},
	{Name: "Learning", Icon: "book", Color: "#eab308", Priority: 4},
}

type clientSyncService struct {
	remote    adapter.RemoteStore
	local     *store.LocalStore
	mapper    *IdentifierMapper
	validator validators.Validator
	options   SyncOptions
	logger    *logger.Logger

	mu              sync.RWMutex
	userID          string
	categories      []models.Category
	items           []models.Item
	categoriesState CollectionState
	itemsState      CollectionState

	// pending holds ids whose last remote write failed, per collection.
	pendingCategories map[string]struct{}
	pendingItems      map[string]struct{}

	// flushMu serializes offline item submission across refreshes.
	flushMu sync.Mutex

	subMu sync.Mutex
	sub   adapter.Subscription

	observersMu sync.Mutex
	observers   []func(ctx context.Context, count int)
}

// NewClientSyncService builds the synchronization engine. The engine is idle
// until Start binds it to a user.
func NewClientSyncService(
	remote adapter.RemoteStore,
	local *store.LocalStore,
	mapper *IdentifierMapper,
	validator validators.Validator,
	options SyncOptions,
	logger *logger.Logger,
) ClientSyncService {
	if options.RealtimeRefetchTimeout <= 0 {
		options.RealtimeRefetchTimeout = defaultRealtimeRefetchTimeout
	}
	if mapper == nil {
		mapper = NewIdentifierMapper()
	}
	return &clientSyncService{
		remote:            remote,
		local:             local,
		mapper:            mapper,
		validator:         validator,
		options:           options,
		logger:            logger,
		pendingCategories: map[string]struct{}{},
		pendingItems:      map[string]struct{}{},
	}
}

func (s *clientSyncService) Start(ctx context.Context, userID, token string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	s.Unsubscribe()
	s.remote.SetToken(token)

	s.mu.Lock()
	if s.userID != userID {
		s.resetLocked()
	}
	s.userID = userID
	s.mu.Unlock()

	s.loadCache(ctx, userID)

	if err := s.RefreshData(ctx); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSyncService.Start").Str("user_id", userID).
			Msg("initial refresh failed, using local cache")
	}
	if err := s.Subscribe(ctx); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSyncService.Start").Str("user_id", userID).
			Msg("realtime subscription failed")
	}

	return nil
}

func (s *clientSyncService) Stop() {
	s.Unsubscribe()
}

func (s *clientSyncService) SignOut(ctx context.Context) {
	s.Unsubscribe()
	s.remote.SetToken("")

	s.mu.Lock()
	userID := s.userID
	s.userID = ""
	s.resetLocked()
	s.mu.Unlock()

	s.mapper.BuildMappings(nil)
	logger.FromContext(ctx).Info().Str("func", "clientSyncService.SignOut").Str("user_id", userID).Msg("signed out")
}

func (s *clientSyncService) WipeLocalData(ctx context.Context) {
	userID := s.UserID()
	if userID == "" {
		return
	}
	s.local.ClearAll(ctx, userID)
}

func (s *clientSyncService) resetLocked() {
	s.categories = nil
	s.items = nil
	s.categoriesState = StateUninitialized
	s.itemsState = StateUninitialized
	s.pendingCategories = map[string]struct{}{}
	s.pendingItems = map[string]struct{}{}
}

// loadCache makes the cached collections of userID available before the
// first refresh completes.
func (s *clientSyncService) loadCache(ctx context.Context, userID string) {
	categories := store.ReadValue[[]models.Category](ctx, s.local, userID, store.KeyCategories, nil)
	items := store.ReadValue[[]models.Item](ctx, s.local, userID, store.KeyItems, nil)

	s.mu.Lock()
	if s.userID != userID {
		s.mu.Unlock()
		return
	}
	if s.categoriesState == StateUninitialized {
		models.SortCategoriesByPriority(categories)
		s.categories = categories
		s.categoriesState = StateLoading
	}
	if s.itemsState == StateUninitialized {
		s.items = items
		s.itemsState = StateLoading
	}
	s.mapper.BuildMappings(s.categories)
	s.mu.Unlock()
}

func (s *clientSyncService) RefreshData(ctx context.Context) error {
	userID := s.UserID()
	if userID == "" {
		return nil
	}

	s.mu.Lock()
	if s.categoriesState == StateUninitialized {
		s.categoriesState = StateLoading
	}
	if s.itemsState == StateUninitialized {
		s.itemsState = StateLoading
	}
	s.mu.Unlock()

	if err := s.flushLocalItems(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSyncService.RefreshData").Str("user_id", userID).
			Msg("offline items were not submitted")
	}

	var (
		g               errgroup.Group
		categories      []models.Category
		items           []models.Item
		catErr, itemErr error
	)
	g.Go(func() error {
		categories, catErr = s.remote.ListCategories(ctx)
		return nil
	})
	g.Go(func() error {
		items, itemErr = s.remote.ListItems(ctx)
		return nil
	})
	_ = g.Wait()

	if catErr != nil {
		s.logger.Err(catErr).Str("func", "clientSyncService.RefreshData").Str("user_id", userID).
			Msg("error fetching categories, keeping local copy")
		s.markReady(userID, models.TableCategories)
	} else {
		s.replaceCategories(ctx, userID, categories)
	}

	if itemErr != nil {
		s.logger.Err(itemErr).Str("func", "clientSyncService.RefreshData").Str("user_id", userID).
			Msg("error fetching items, keeping local copy")
		s.markReady(userID, models.TableItems)
	} else {
		s.replaceItems(ctx, userID, items)
	}

	if catErr == nil && len(categories) == 0 {
		s.provisionDefaults(ctx, userID)
	}

	if catErr != nil {
		return mapAdapterError(catErr)
	}
	return mapAdapterError(itemErr)
}

func (s *clientSyncService) markReady(userID, table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return
	}
	switch table {
	case models.TableCategories:
		s.categoriesState = StateReady
	case models.TableItems:
		s.itemsState = StateReady
	}
}

// replaceCategories installs a fetched category list and clears the pending
// markers it confirms.
func (s *clientSyncService) replaceCategories(ctx context.Context, userID string, categories []models.Category) {
	models.SortCategoriesByPriority(categories)

	s.mu.Lock()
	if s.userID != userID {
		s.mu.Unlock()
		return
	}
	s.categories = categories
	s.categoriesState = StateReady
	s.pendingCategories = map[string]struct{}{}
	s.persistCategoriesLocked(ctx)
	s.mapper.BuildMappings(s.categories)
	count := len(s.categories)
	s.mu.Unlock()

	s.notifyCategoryCount(ctx, count)
}

// replaceItems installs a fetched item list. Items created while offline
// that have not been submitted yet are kept.
func (s *clientSyncService) replaceItems(ctx context.Context, userID string, items []models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return
	}

	for _, it := range s.items {
		if isLocalItem(it.ID) {
			items = append(items, it)
		}
	}

	pending := map[string]struct{}{}
	for id := range s.pendingItems {
		if isLocalItem(id) {
			pending[id] = struct{}{}
		}
	}

	s.items = items
	s.itemsState = StateReady
	s.pendingItems = pending
	s.persistItemsLocked(ctx)
}

func (s *clientSyncService) persistCategoriesLocked(ctx context.Context) {
	s.local.Write(ctx, s.userID, store.KeyCategories, s.categories)
}

func (s *clientSyncService) persistItemsLocked(ctx context.Context) {
	s.local.Write(ctx, s.userID, store.KeyItems, s.items)
}

func (s *clientSyncService) provisionDefaults(ctx context.Context, userID string) {
	if !s.options.ProvisionDefaults || len(s.options.DefaultCategories) == 0 {
		return
	}
	if store.ReadValue(ctx, s.local, userID, store.KeyDefaultsProvisioned, false) {
		return
	}
	if s.options.HasLegacyData != nil && s.options.HasLegacyData(ctx) {
		return
	}

	s.logger.Info().Str("func", "clientSyncService.provisionDefaults").Str("user_id", userID).
		Int("count", len(s.options.DefaultCategories)).Msg("creating starter categories")

	for _, in := range s.options.DefaultCategories {
		if _, err := s.CreateCategory(ctx, in); err != nil {
			s.logger.Err(err).Str("func", "clientSyncService.provisionDefaults").Str("name", in.Name).
				Msg("error creating starter category")
			if errors.Is(err, ErrOffline) {
				return
			}
		}
	}
	s.local.Write(ctx, userID, store.KeyDefaultsProvisioned, true)
}

func (s *clientSyncService) Subscribe(ctx context.Context) error {
	userID := s.UserID()
	if userID == "" {
		return ErrNotAuthenticated
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.closeSubscriptionLocked()

	sub, err := s.remote.Subscribe(ctx, s.handleChange)
	if err != nil {
		return mapAdapterError(err)
	}
	s.sub = sub

	s.logger.Debug().Str("func", "clientSyncService.Subscribe").Str("user_id", userID).Msg("subscribed to changes")
	return nil
}

// Subscribed reports whether a realtime subscription is open and its feed
// has not ended.
func (s *clientSyncService) Subscribed() bool {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.sub == nil {
		return false
	}
	select {
	case <-s.sub.Done():
		return false
	default:
		return true
	}
}

func (s *clientSyncService) Unsubscribe() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.closeSubscriptionLocked()
}

func (s *clientSyncService) closeSubscriptionLocked() {
	if s.sub == nil {
		return
	}
	if err := s.sub.Close(); err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.Unsubscribe").Msg("error closing subscription")
	}
	s.sub = nil
}

// handleChange refetches the collection named by a change notification.
func (s *clientSyncService) handleChange(event models.ChangeEvent) {
	userID := s.UserID()
	if userID == "" || (event.UserID != "" && event.UserID != userID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.options.RealtimeRefetchTimeout)
	defer cancel()

	switch event.Table {
	case models.TableCategories:
		categories, err := s.remote.ListCategories(ctx)
		if err != nil {
			s.logger.Err(err).Str("func", "clientSyncService.handleChange").Str("table", event.Table).
				Msg("error refetching after change")
			return
		}
		s.replaceCategories(ctx, userID, categories)
	case models.TableItems:
		items, err := s.remote.ListItems(ctx)
		if err != nil {
			s.logger.Err(err).Str("func", "clientSyncService.handleChange").Str("table", event.Table).
				Msg("error refetching after change")
			return
		}
		s.replaceItems(ctx, userID, items)
	default:
		s.logger.Debug().Str("func", "clientSyncService.handleChange").Str("table", event.Table).
			Msg("ignoring change for unknown table")
	}
}

func (s *clientSyncService) OnCategoryCountChanged(fn func(ctx context.Context, count int)) {
	s.observersMu.Lock()
	defer s.observersMu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *clientSyncService) notifyCategoryCount(ctx context.Context, count int) {
	s.observersMu.Lock()
	observers := append([]func(context.Context, int){}, s.observers...)
	s.observersMu.Unlock()

	for _, fn := range observers {
		fn(ctx, count)
	}
}

func (s *clientSyncService) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *clientSyncService) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Item(nil), s.items...)
}

func (s *clientSyncService) CategoriesState() CollectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoriesState
}

func (s *clientSyncService) ItemsState() CollectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsState
}

func (s *clientSyncService) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *clientSyncService) PendingConfirmation(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.pendingCategories[id]; ok {
		return true
	}
	_, ok := s.pendingItems[id]
	return ok
}

func (s *clientSyncService) Resolve(ref string) string {
	return s.mapper.Resolve(ref)
}

func isLocalItem(id string) bool {
	return utils.IsLocalID(id, localItemPrefix)
}
