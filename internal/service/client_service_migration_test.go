// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDataOperations records what the migration submits.
type fakeDataOperations struct {
	categories       []models.Category
	failCategory     map[string]error
	acceptPerBatch   int
	createdInputs    []models.CategoryInput
	submittedBatches [][]models.ItemInput
}

func (f *fakeDataOperations) Categories() []models.Category {
	return f.categories
}

func (f *fakeDataOperations) CreateCategory(_ context.Context, in models.CategoryInput) (models.Category, error) {
	f.createdInputs = append(f.createdInputs, in)
	if err, ok := f.failCategory[in.Name]; ok {
		return models.Category{}, err
	}
	c := models.Category{ID: "new-" + strings.ToLower(in.Name), Name: in.Name, Priority: in.Priority}
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeDataOperations) BulkCreateItems(_ context.Context, items []models.ItemInput) ([]models.Item, error) {
	f.submittedBatches = append(f.submittedBatches, items)
	accept := len(items)
	if f.acceptPerBatch > 0 && f.acceptPerBatch < accept {
		accept = f.acceptPerBatch
	}
	out := make([]models.Item, 0, accept)
	for i, in := range items[:accept] {
		out = append(out, models.Item{ID: fmt.Sprintf("item-%d", i), Title: in.Title, CategoryID: in.CategoryID})
	}
	return out, nil
}

// countingKV counts writes to tell apart a read-only run.
type countingKV struct {
	*store.MemoryKeyValueStore
	writes int
}

func (c *countingKV) Set(ctx context.Context, key, value string) error {
	c.writes++
	return c.MemoryKeyValueStore.Set(ctx, key, value)
}

func (c *countingKV) Delete(ctx context.Context, key string) error {
	c.writes++
	return c.MemoryKeyValueStore.Delete(ctx, key)
}

func newTestMigration() (*clientMigrationService, *store.LocalStore, *countingKV) {
	kv := &countingKV{MemoryKeyValueStore: store.NewMemoryKeyValueStore()}
	local := store.NewLocalStore(kv, logger.Nop())
	svc := NewClientMigrationService(local, logger.Nop()).(*clientMigrationService)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, local, kv
}

func seedLegacy(t *testing.T, kv store.KeyValueStore, categories, items string) {
	t.Helper()
	ctx := context.Background()
	if categories != "" {
		require.NoError(t, kv.Set(ctx, store.KeyCategories, categories))
	}
	if items != "" {
		require.NoError(t, kv.Set(ctx, store.KeyItems, items))
	}
}

func legacyItems(n int, categoryID string) []models.LegacyItem {
	out := make([]models.LegacyItem, n)
	for i := range out {
		out[i] = models.LegacyItem{ID: fmt.Sprintf("i%d", i), Title: fmt.Sprintf("t%d", i), Type: "todo", CategoryID: categoryID}
	}
	return out
}

// ── DetectLegacyData ─────────────────────────────────────────────────────────

func TestMigration_DetectLegacyData_RehydratesDates(t *testing.T) {
	svc, _, kv := newTestMigration()
	seedLegacy(t, kv,
		`[{"id":"old1","name":"Fitness","icon":"dumbbell","color":"green","priority":2,"createdAt":"2024-03-01T10:00:00.000Z"}]`,
		`[{"id":"i1","title":"Run","type":"routine","categoryId":"old1","dueDate":1709287200000,
		   "metadata":{"priority":"high","startTime":"2024-03-01T07:00:00.000Z","endTime":1709280000000}}]`,
	)

	data := svc.DetectLegacyData(context.Background())
	require.True(t, data.HasData)
	require.Len(t, data.Categories, 1)
	require.Len(t, data.Items, 1)

	c := data.Categories[0]
	require.NotNil(t, c.CreatedAt)
	assert.True(t, c.CreatedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.Nil(t, c.UpdatedAt)

	it := data.Items[0]
	require.NotNil(t, it.DueDate)
	assert.True(t, it.DueDate.Equal(time.UnixMilli(1709287200000)))
	start, ok := it.Metadata["startTime"].(time.Time)
	require.True(t, ok)
	assert.True(t, start.Equal(time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)))
	_, ok = it.Metadata["endTime"].(time.Time)
	assert.True(t, ok)
	assert.Equal(t, "high", it.Metadata["priority"])
}

func TestMigration_DetectLegacyData_ParseFailureMeansNoData(t *testing.T) {
	tests := []struct {
		name       string
		categories string
		items      string
	}{
		{name: "categories not json", categories: "{broken", items: `[{"id":"i1"}]`},
		{name: "items not json", categories: `[{"id":"c1","name":"A"}]`, items: "[oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, kv := newTestMigration()
			seedLegacy(t, kv, tt.categories, tt.items)

			data := svc.DetectLegacyData(context.Background())
			assert.False(t, data.HasData)
			assert.Empty(t, data.Categories)
			assert.Empty(t, data.Items)

			// detection never removes anything
			_, ok, _ := kv.Get(context.Background(), store.KeyCategories)
			assert.Equal(t, tt.categories != "", ok)
		})
	}
}

func TestMigration_DetectLegacyData_UnrecognisedDatesAreDropped(t *testing.T) {
	svc, _, kv := newTestMigration()
	seedLegacy(t, kv,
		`[{"id":"c1","name":"Fitness","createdAt":"yesterday","updatedAt":true}]`,
		`[{"id":"i1","title":"Stretch","type":"routine","categoryId":"c1","dueDate":"next week",
		  "dateTime":1709287200000,"metadata":{"priority":"high","startTime":"9:00 AM","endTime":"2024-03-01T10:30:00Z"}}]`)

	data := svc.DetectLegacyData(context.Background())
	require.True(t, data.HasData)
	require.Len(t, data.Categories, 1)
	require.Len(t, data.Items, 1)

	c := data.Categories[0]
	assert.Equal(t, "Fitness", c.Name)
	assert.Nil(t, c.CreatedAt)
	assert.Nil(t, c.UpdatedAt)

	it := data.Items[0]
	assert.Nil(t, it.DueDate)
	require.NotNil(t, it.DateTime)
	assert.Equal(t, int64(1709287200000), it.DateTime.UnixMilli())
	assert.NotContains(t, it.Metadata, "startTime")
	endTime, ok := it.Metadata["endTime"].(time.Time)
	require.True(t, ok)
	assert.True(t, endTime.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "high", it.Metadata["priority"])
	assert.True(t, svc.HasLegacyData(context.Background()))
}

func TestMigration_DetectLegacyData_Empty(t *testing.T) {
	svc, _, _ := newTestMigration()
	data := svc.DetectLegacyData(context.Background())
	assert.False(t, data.HasData)
	assert.False(t, svc.HasLegacyData(context.Background()))
}

// ── Migrate ──────────────────────────────────────────────────────────────────

func TestMigration_Migrate_NoDataIsNoOp(t *testing.T) {
	svc, _, kv := newTestMigration()
	ops := &fakeDataOperations{}

	var phases []models.MigrationPhase
	result := svc.Migrate(context.Background(), svc.DetectLegacyData(context.Background()), ops,
		func(p models.MigrationProgress) { phases = append(phases, p.Phase) })

	assert.Equal(t, models.MigrationResult{Success: true, Errors: []string{}}, result)
	assert.Zero(t, kv.writes)
	assert.Empty(t, ops.createdInputs)
	assert.Empty(t, ops.submittedBatches)
	assert.Equal(t, models.PhaseComplete, phases[len(phases)-1])
}

func TestMigration_Migrate_AlreadyMigratedIsNoOp(t *testing.T) {
	svc, local, kv := newTestMigration()
	ctx := context.Background()
	local.Write(ctx, "", store.KeyMigrationComplete, true)
	writesBefore := kv.writes

	ops := &fakeDataOperations{}
	result := svc.Migrate(ctx, models.LegacyData{
		Categories: []models.LegacyCategory{{ID: "old1", Name: "Fitness"}},
		HasData:    true,
	}, ops, nil)

	assert.True(t, result.Success)
	assert.Zero(t, result.CategoriesMigrated)
	assert.Empty(t, ops.createdInputs)
	assert.Equal(t, writesBefore, kv.writes)
}

func TestMigration_Migrate_RemapsCategoryIDs(t *testing.T) {
	svc, local, kv := newTestMigration()
	ctx := context.Background()
	seedLegacy(t, kv,
		`[{"id":"old1","name":"Fitness","priority":0}]`,
		`[{"id":"i1","title":"Run","type":"todo","categoryId":"old1"},
		  {"id":"i2","title":"","type":"journal","categoryId":"gone"}]`,
	)

	ops := &fakeDataOperations{}
	result := svc.Migrate(ctx, svc.DetectLegacyData(ctx), ops, nil)

	require.True(t, result.Success, result.Errors)
	assert.Equal(t, 1, result.CategoriesMigrated)
	assert.Equal(t, 2, result.ItemsMigrated)

	require.Len(t, ops.submittedBatches, 1)
	batch := ops.submittedBatches[0]
	assert.Equal(t, "new-fitness", batch[0].CategoryID)
	assert.Equal(t, "gone", batch[1].CategoryID, "unmapped ids are passed through")
	assert.Equal(t, models.ItemTypeNote, batch[1].Type)
	assert.Equal(t, untitledItem, batch[1].Title)

	// cleanup ran
	_, ok := local.ReadRaw(ctx, "", store.KeyCategories)
	assert.False(t, ok)
	_, ok = local.ReadRaw(ctx, "", store.KeyItems)
	assert.False(t, ok)
	assert.True(t, svc.IsAlreadyMigrated(ctx))

	backup := store.ReadValue[*models.MigrationBackup](ctx, local, "", store.KeyMigrationBackup, nil)
	require.NotNil(t, backup)
	assert.Len(t, backup.Categories, 1)
	assert.Len(t, backup.Items, 2)
	assert.True(t, backup.Timestamp.Equal(svc.now()))
}

func TestMigration_Migrate_FailureKeepsLegacyData(t *testing.T) {
	svc, local, kv := newTestMigration()
	ctx := context.Background()
	seedLegacy(t, kv,
		`[{"id":"a","name":"Work"},{"id":"b","name":"Broken"},{"id":"c","name":"Home"}]`,
		`[{"id":"i1","title":"x","type":"todo","categoryId":"a"}]`,
	)

	ops := &fakeDataOperations{failCategory: map[string]error{"Broken": ErrConstraintViolation}}
	result := svc.Migrate(ctx, svc.DetectLegacyData(ctx), ops, nil)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.CategoriesMigrated, "one failure does not abort the run")
	assert.Equal(t, 1, result.ItemsMigrated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Broken")

	_, ok := local.ReadRaw(ctx, "", store.KeyCategories)
	assert.True(t, ok)
	_, ok = local.ReadRaw(ctx, "", store.KeyItems)
	assert.True(t, ok)
	assert.False(t, svc.IsAlreadyMigrated(ctx))
	_, ok = local.ReadRaw(ctx, "", store.KeyMigrationBackup)
	assert.False(t, ok)
}

func TestMigration_Migrate_ShortBatchRecordedAndContinues(t *testing.T) {
	svc, _, _ := newTestMigration()
	ctx := context.Background()

	data := models.LegacyData{
		Categories: []models.LegacyCategory{{ID: "old1", Name: "Work"}},
		Items:      legacyItems(120, "old1"),
		HasData:    true,
	}
	ops := &fakeDataOperations{acceptPerBatch: 45}

	result := svc.Migrate(ctx, data, ops, nil)

	assert.False(t, result.Success)
	require.Len(t, ops.submittedBatches, 3)
	assert.Len(t, ops.submittedBatches[0], 50)
	assert.Len(t, ops.submittedBatches[2], 20)
	assert.Equal(t, 45+45+20, result.ItemsMigrated)
	assert.Equal(t, []string{"batch 1: 45 of 50 items created", "batch 2: 45 of 50 items created"}, result.Errors)
}

func TestMigration_Migrate_DuplicateCategoryReusesExisting(t *testing.T) {
	svc, _, _ := newTestMigration()
	ops := &fakeDataOperations{
		categories:   []models.Category{{ID: "existing-work", Name: "Work"}},
		failCategory: map[string]error{"Work": ErrDuplicateCategoryName},
	}

	result := svc.Migrate(context.Background(), models.LegacyData{
		Categories: []models.LegacyCategory{{ID: "old-work", Name: "Work"}},
		Items:      legacyItems(1, "old-work"),
		HasData:    true,
	}, ops, nil)

	require.True(t, result.Success, result.Errors)
	assert.Equal(t, "existing-work", ops.submittedBatches[0][0].CategoryID)
}

func TestMigration_Migrate_ProgressBands(t *testing.T) {
	svc, _, _ := newTestMigration()
	data := models.LegacyData{
		Categories: []models.LegacyCategory{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}},
		Items:      legacyItems(101, "a"),
		HasData:    true,
	}

	var events []models.MigrationProgress
	result := svc.Migrate(context.Background(), data, &fakeDataOperations{}, func(p models.MigrationProgress) {
		events = append(events, p)
	})
	require.True(t, result.Success)

	got := make([]string, 0, len(events))
	for _, e := range events {
		got = append(got, fmt.Sprintf("%s:%d", e.Phase, e.Progress))
	}
	assert.Equal(t, []string{
		"checking:10",
		"categories:30", "categories:40", "categories:50",
		"items:63", "items:76", "items:90",
		"cleanup:95",
		"complete:100",
	}, got)

	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].Progress, events[i-1].Progress)
	}
}

func TestMigration_Migrate_ErrorPhaseReported(t *testing.T) {
	svc, _, _ := newTestMigration()
	ops := &fakeDataOperations{failCategory: map[string]error{"A": ErrUnknownRemote}}

	var last models.MigrationProgress
	svc.Migrate(context.Background(), models.LegacyData{
		Categories: []models.LegacyCategory{{ID: "a", Name: "A"}},
		HasData:    true,
	}, ops, func(p models.MigrationProgress) { last = p })

	assert.Equal(t, models.PhaseError, last.Phase)
	assert.Contains(t, last.Message, "1 error")
}

// ── Backup ───────────────────────────────────────────────────────────────────

func TestMigration_RestoreFromBackup(t *testing.T) {
	svc, local, kv := newTestMigration()
	ctx := context.Background()
	seedLegacy(t, kv,
		`[{"id":"old1","name":"Fitness","createdAt":"2024-03-01T10:00:00Z"}]`,
		`[{"id":"i1","title":"Run","type":"todo","categoryId":"old1"}]`,
	)

	result := svc.Migrate(ctx, svc.DetectLegacyData(ctx), &fakeDataOperations{}, nil)
	require.True(t, result.Success)
	require.False(t, svc.HasLegacyData(ctx))

	require.NoError(t, svc.RestoreFromBackup(ctx))

	assert.False(t, svc.IsAlreadyMigrated(ctx))
	_, ok := local.ReadRaw(ctx, "", store.KeyMigrationBackup)
	assert.False(t, ok)

	data := svc.DetectLegacyData(ctx)
	require.True(t, data.HasData)
	assert.Equal(t, "Fitness", data.Categories[0].Name)
	require.NotNil(t, data.Categories[0].CreatedAt)
	assert.Equal(t, "old1", data.Items[0].CategoryID)
}

func TestMigration_RestoreFromBackup_NoBackup(t *testing.T) {
	svc, _, _ := newTestMigration()
	assert.ErrorIs(t, svc.RestoreFromBackup(context.Background()), ErrNoMigrationBackup)
}

func TestMigration_ClearMigrationFlags(t *testing.T) {
	svc, local, _ := newTestMigration()
	ctx := context.Background()
	local.Write(ctx, "", store.KeyMigrationComplete, true)
	local.Write(ctx, "", store.KeyMigrationBackup, models.MigrationBackup{})

	svc.ClearMigrationFlags(ctx)

	assert.False(t, svc.IsAlreadyMigrated(ctx))
	_, ok := local.ReadRaw(ctx, "", store.KeyMigrationBackup)
	assert.False(t, ok)
}
