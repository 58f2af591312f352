// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/models"
)

const (
	migrationBatchSize = 50

	progressChecking        = 10
	progressCategoriesStart = 20
	progressCategoriesSpan  = 30
	progressItemsStart      = 50
	progressItemsSpan       = 40
	progressCleanup         = 95
	progressComplete        = 100

	untitledItem = "Untitled"
)

type clientMigrationService struct {
	local  *store.LocalStore
	logger *logger.Logger
	now    func() time.Time

	// mu keeps migrations strictly sequential.
	mu sync.Mutex
}

func NewClientMigrationService(local *store.LocalStore, logger *logger.Logger) ClientMigrationService {
	return &clientMigrationService{local: local, logger: logger, now: time.Now}
}

// DetectLegacyData reads the legacy collections from the global slot. Any
// decoding failure is reported as no data; nothing is modified.
func (m *clientMigrationService) DetectLegacyData(ctx context.Context) models.LegacyData {
	data := models.LegacyData{Categories: []models.LegacyCategory{}, Items: []models.LegacyItem{}}

	if raw, ok := m.local.ReadRaw(ctx, "", store.KeyCategories); ok {
		categories, err := decodeLegacyCategories([]byte(raw), m.logger)
		if err != nil {
			m.logger.Err(err).Str("func", "clientMigrationService.DetectLegacyData").Msg("error decoding legacy categories")
			return models.LegacyData{}
		}
		data.Categories = categories
	}

	if raw, ok := m.local.ReadRaw(ctx, "", store.KeyItems); ok {
		items, err := decodeLegacyItems([]byte(raw), m.logger)
		if err != nil {
			m.logger.Err(err).Str("func", "clientMigrationService.DetectLegacyData").Msg("error decoding legacy items")
			return models.LegacyData{}
		}
		data.Items = items
	}

	data.HasData = len(data.Categories) > 0 || len(data.Items) > 0
	return data
}

func (m *clientMigrationService) HasLegacyData(ctx context.Context) bool {
	return m.DetectLegacyData(ctx).HasData
}

func (m *clientMigrationService) IsAlreadyMigrated(ctx context.Context) bool {
	return store.ReadValue(ctx, m.local, "", store.KeyMigrationComplete, false)
}

// Migrate creates the legacy categories, then the legacy items in batches
// with their category ids remapped. Legacy keys are removed only when every
// category and every batch succeeded, so a failed run can be retried.
func (m *clientMigrationService) Migrate(
	ctx context.Context,
	data models.LegacyData,
	ops DataOperations,
	progress func(models.MigrationProgress),
) models.MigrationResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := func(phase models.MigrationPhase, percent int, msg string) {
		if progress != nil {
			progress(models.MigrationProgress{Phase: phase, Progress: percent, Message: msg})
		}
	}
	result := models.MigrationResult{Errors: []string{}}

	report(models.PhaseChecking, progressChecking, "Checking for existing data")

	if m.IsAlreadyMigrated(ctx) {
		m.logger.Info().Str("func", "clientMigrationService.Migrate").Msg("migration already completed")
		result.Success = true
		report(models.PhaseComplete, progressComplete, "Migration already completed")
		return result
	}
	if !data.HasData {
		result.Success = true
		report(models.PhaseComplete, progressComplete, "No local data to migrate")
		return result
	}

	idMap := m.migrateCategories(ctx, data.Categories, ops, &result, report)
	m.migrateItems(ctx, data.Items, idMap, ops, &result, report)

	if len(result.Errors) > 0 {
		m.logger.Warn().Str("func", "clientMigrationService.Migrate").Strs("errors", result.Errors).
			Msg("migration finished with errors, legacy data kept")
		report(models.PhaseError, progressComplete,
			fmt.Sprintf("Migration finished with %d error(s); local data was kept", len(result.Errors)))
		return result
	}

	report(models.PhaseCleanup, progressCleanup, "Cleaning up local data")
	m.local.Write(ctx, "", store.KeyMigrationBackup, models.MigrationBackup{
		Timestamp:  m.now().UTC(),
		Categories: data.Categories,
		Items:      data.Items,
	})
	m.local.Remove(ctx, "", store.KeyCategories)
	m.local.Remove(ctx, "", store.KeyItems)
	m.local.Write(ctx, "", store.KeyMigrationComplete, true)

	result.Success = true
	m.logger.Info().Str("func", "clientMigrationService.Migrate").
		Int("categories", result.CategoriesMigrated).Int("items", result.ItemsMigrated).
		Msg("migration completed")
	report(models.PhaseComplete, progressComplete,
		fmt.Sprintf("Migrated %d categories and %d items", result.CategoriesMigrated, result.ItemsMigrated))
	return result
}

// migrateCategories returns the legacy id to new id mapping.
func (m *clientMigrationService) migrateCategories(
	ctx context.Context,
	categories []models.LegacyCategory,
	ops DataOperations,
	result *models.MigrationResult,
	report func(models.MigrationPhase, int, string),
) map[string]string {
	idMap := make(map[string]string, len(categories))
	n := len(categories)

	for i, c := range categories {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("category %q: %v", c.Name, err))
			break
		}

		created, err := ops.CreateCategory(ctx, models.CategoryInput{
			Name:     c.Name,
			Icon:     c.Icon,
			Color:    c.Color,
			Priority: c.Priority,
		})
		switch {
		case err == nil:
			idMap[c.ID] = created.ID
			result.CategoriesMigrated++
		case errors.Is(err, ErrDuplicateCategoryName):
			// a previous partial run already created it
			if existing, ok := findCategoryByName(ops.Categories(), c.Name); ok {
				idMap[c.ID] = existing.ID
				result.CategoriesMigrated++
				break
			}
			result.Errors = append(result.Errors, fmt.Sprintf("category %q: %v", c.Name, err))
		default:
			m.logger.Err(err).Str("func", "clientMigrationService.migrateCategories").Str("name", c.Name).
				Msg("error migrating category")
			result.Errors = append(result.Errors, fmt.Sprintf("category %q: %v", c.Name, err))
		}

		report(models.PhaseCategories, progressCategoriesStart+(i+1)*progressCategoriesSpan/n,
			fmt.Sprintf("Migrated category %d of %d", i+1, n))
	}
	return idMap
}

func (m *clientMigrationService) migrateItems(
	ctx context.Context,
	items []models.LegacyItem,
	idMap map[string]string,
	ops DataOperations,
	result *models.MigrationResult,
	report func(models.MigrationPhase, int, string),
) {
	if len(items) == 0 {
		return
	}

	inputs := make([]models.ItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, m.legacyItemInput(it, idMap))
	}

	batches := (len(inputs) + migrationBatchSize - 1) / migrationBatchSize
	for b := 0; b < batches; b++ {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("batch %d: %v", b+1, err))
			break
		}

		start := b * migrationBatchSize
		end := min(start+migrationBatchSize, len(inputs))
		batch := inputs[start:end]

		created, err := ops.BulkCreateItems(ctx, batch)
		switch {
		case err != nil:
			m.logger.Err(err).Str("func", "clientMigrationService.migrateItems").Int("batch", b+1).
				Msg("error migrating item batch")
			result.Errors = append(result.Errors, fmt.Sprintf("batch %d: %v", b+1, err))
		case len(created) < len(batch):
			result.Errors = append(result.Errors,
				fmt.Sprintf("batch %d: %d of %d items created", b+1, len(created), len(batch)))
		}
		result.ItemsMigrated += len(created)

		report(models.PhaseItems, progressItemsStart+(b+1)*progressItemsSpan/batches,
			fmt.Sprintf("Migrated batch %d of %d", b+1, batches))
	}
}

// legacyItemInput converts a legacy item. Category ids without a mapping are
// passed through for the engine to resolve.
func (m *clientMigrationService) legacyItemInput(it models.LegacyItem, idMap map[string]string) models.ItemInput {
	categoryID := it.CategoryID
	if mapped, ok := idMap[categoryID]; ok {
		categoryID = mapped
	}

	itemType, err := models.ParseItemType(it.Type)
	if err != nil {
		m.logger.Debug().Str("func", "clientMigrationService.legacyItemInput").Str("type", it.Type).
			Msg("unknown legacy item type, using note")
		itemType = models.ItemTypeNote
	}

	title := it.Title
	if title == "" {
		title = untitledItem
	}

	return models.ItemInput{
		Title:      title,
		Text:       it.Text,
		Type:       itemType,
		Completed:  it.Completed,
		CategoryID: categoryID,
		DueDate:    it.DueDate,
		DateTime:   it.DateTime,
		Metadata:   models.Metadata(it.Metadata),
		Attachment: it.Attachment,
	}
}

// RestoreFromBackup puts the backed up legacy collections back in place and
// clears the migration flag so the next start migrates again.
func (m *clientMigrationService) RestoreFromBackup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	backup := store.ReadValue[*models.MigrationBackup](ctx, m.local, "", store.KeyMigrationBackup, nil)
	if backup == nil {
		return ErrNoMigrationBackup
	}

	m.local.Write(ctx, "", store.KeyCategories, backup.Categories)
	m.local.Write(ctx, "", store.KeyItems, backup.Items)
	m.local.Remove(ctx, "", store.KeyMigrationComplete)
	m.local.Remove(ctx, "", store.KeyMigrationBackup)

	logger.FromContext(ctx).Info().Str("func", "clientMigrationService.RestoreFromBackup").
		Time("backup_timestamp", backup.Timestamp).
		Int("categories", len(backup.Categories)).Int("items", len(backup.Items)).
		Msg("legacy data restored from backup")
	return nil
}

func (m *clientMigrationService) ClearMigrationFlags(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.local.Remove(ctx, "", store.KeyMigrationComplete)
	m.local.Remove(ctx, "", store.KeyMigrationBackup)
}

func findCategoryByName(categories []models.Category, name string) (models.Category, bool) {
	for _, c := range categories {
		if c.SameName(name) {
			return c, true
		}
	}
	return models.Category{}, false
}
