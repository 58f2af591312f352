// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCategoryStore is an in-memory CategoryStore that records writes.
type memoryCategoryStore struct {
	mu         sync.Mutex
	categories []models.Category
	writes     []string
	failOn     string
}

func newMemoryCategoryStore(priorities ...int) *memoryCategoryStore {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &memoryCategoryStore{}
	for i, p := range priorities {
		s.categories = append(s.categories, models.Category{
			ID:        string(rune('a' + i)),
			Name:      "Category " + string(rune('A'+i)),
			Priority:  p,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return s
}

func (s *memoryCategoryStore) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *memoryCategoryStore) UpdateCategory(_ context.Context, id string, patch models.CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.failOn {
		return ErrUnknownRemote
	}
	for i := range s.categories {
		if s.categories[i].ID == id {
			if patch.Priority != nil {
				s.categories[i].Priority = *patch.Priority
			}
			s.writes = append(s.writes, id)
			return nil
		}
	}
	return ErrCategoryNotFound
}

func (s *memoryCategoryStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return
		}
	}
}

func (s *memoryCategoryStore) priorities() map[string]int {
	out := make(map[string]int)
	for _, c := range s.Categories() {
		out[c.ID] = c.Priority
	}
	return out
}

func (s *memoryCategoryStore) resetWrites() {
	s.mu.Lock()
	s.writes = nil
	s.mu.Unlock()
}

func assertUniquePriorities(t *testing.T, categories []models.Category) {
	t.Helper()
	seen := make(map[int]string, len(categories))
	for _, c := range categories {
		if other, dup := seen[c.Priority]; dup {
			t.Fatalf("priority %d held by %s and %s", c.Priority, other, c.ID)
		}
		seen[c.Priority] = c.ID
	}
}

// ── NextAvailablePriority / ValidateAssignment ───────────────────────────────

func TestPriority_NextAvailablePriority(t *testing.T) {
	tests := []struct {
		name       string
		priorities []int
		want       int
	}{
		{name: "empty", priorities: nil, want: 0},
		{name: "gap", priorities: []int{0, 1, 3}, want: 2},
		{name: "dense", priorities: []int{0, 1, 2}, want: 3},
		{name: "range full", priorities: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewClientPriorityService(newMemoryCategoryStore(tt.priorities...), logger.Nop())
			assert.Equal(t, tt.want, p.NextAvailablePriority())
		})
	}
}

func TestPriority_ValidateAssignment(t *testing.T) {
	p := NewClientPriorityService(newMemoryCategoryStore(0, 1, 2), logger.Nop())

	tests := []struct {
		name         string
		raw          string
		excluding    string
		wantErr      error
		wantValue    int
		wantConflict string
	}{
		{name: "free value", raw: "5", wantValue: 5},
		{name: "surrounding spaces", raw: " 4 ", wantValue: 4},
		{name: "held by other", raw: "1", excluding: "a", wantValue: 1, wantConflict: "b"},
		{name: "held by itself", raw: "1", excluding: "b", wantValue: 1},
		{name: "not a number", raw: "high", wantErr: ErrInvalidPriority},
		{name: "empty", raw: "", wantErr: ErrInvalidPriority},
		{name: "negative", raw: "-1", wantErr: ErrPriorityOutOfRange},
		{name: "above max", raw: "11", wantErr: ErrPriorityOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ValidateAssignment(tt.raw, tt.excluding)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, got.Value)
			if tt.wantConflict == "" {
				assert.Nil(t, got.ConflictsWith)
				assert.Empty(t, got.Warning)
				return
			}
			require.NotNil(t, got.ConflictsWith)
			assert.Equal(t, tt.wantConflict, got.ConflictsWith.ID)
			assert.NotEmpty(t, got.Warning)
		})
	}
}

// ── CommitWithReorder ────────────────────────────────────────────────────────

func TestPriority_CommitWithReorder(t *testing.T) {
	tests := []struct {
		name       string
		priorities []int
		id         string
		desired    int
		want       map[string]int
		wantWrites []string
	}{
		{
			name:       "free slot writes only target",
			priorities: []int{0, 1, 2},
			id:         "a",
			desired:    7,
			want:       map[string]int{"a": 7, "b": 1, "c": 2},
			wantWrites: []string{"a"},
		},
		{
			name:       "same value writes nothing",
			priorities: []int{0, 1, 2},
			id:         "b",
			desired:    1,
			want:       map[string]int{"a": 0, "b": 1, "c": 2},
			wantWrites: nil,
		},
		{
			name:       "move to front",
			priorities: []int{0, 1, 2},
			id:         "c",
			desired:    0,
			want:       map[string]int{"c": 0, "a": 1, "b": 2},
			wantWrites: []string{"c", "a", "b"},
		},
		{
			name:       "move down",
			priorities: []int{0, 1, 2, 3},
			id:         "a",
			desired:    2,
			want:       map[string]int{"b": 0, "c": 1, "a": 2, "d": 3},
			wantWrites: []string{"b", "c", "a"},
		},
		{
			name:       "sparse list compacted",
			priorities: []int{0, 4, 8},
			id:         "c",
			desired:    4,
			want:       map[string]int{"a": 0, "b": 1, "c": 2},
			wantWrites: []string{"b", "c"},
		},
		{
			name:       "insertion index clamped",
			priorities: []int{10, 3},
			id:         "b",
			desired:    10,
			want:       map[string]int{"a": 0, "b": 1},
			wantWrites: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryCategoryStore(tt.priorities...)
			p := NewClientPriorityService(store, logger.Nop())

			require.NoError(t, p.CommitWithReorder(context.Background(), tt.id, tt.desired))
			assert.Equal(t, tt.want, store.priorities())
			assert.Equal(t, tt.wantWrites, store.writes)
			assertUniquePriorities(t, store.Categories())
		})
	}
}

func TestPriority_CommitWithReorder_Errors(t *testing.T) {
	store := newMemoryCategoryStore(0, 1)
	p := NewClientPriorityService(store, logger.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, p.CommitWithReorder(ctx, "a", 11), ErrPriorityOutOfRange)
	assert.ErrorIs(t, p.CommitWithReorder(ctx, "a", -1), ErrPriorityOutOfRange)
	assert.ErrorIs(t, p.CommitWithReorder(ctx, "missing", 1), ErrCategoryNotFound)

	store.failOn = "b"
	assert.ErrorIs(t, p.CommitWithReorder(ctx, "a", 1), ErrUnknownRemote)
}

func TestPriority_UniqueAcrossOperationSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		store := newMemoryCategoryStore(0, 1, 2, 3, 4, 5)
		p := NewClientPriorityService(store, logger.Nop())

		for step := 0; step < 30; step++ {
			categories := store.Categories()
			if len(categories) == 0 {
				break
			}
			target := categories[rng.Intn(len(categories))].ID

			switch rng.Intn(4) {
			case 0:
				require.NoError(t, p.CommitWithReorder(ctx, target, rng.Intn(models.MaxPriority+1)))
			case 1:
				require.NoError(t, p.SwapAdjacent(ctx, target, DirectionUp))
			case 2:
				require.NoError(t, p.SwapAdjacent(ctx, target, DirectionDown))
			case 3:
				if len(categories) > 1 {
					store.remove(target)
					require.NoError(t, p.CompactAfterDeletion(ctx))
				}
			}
			assertUniquePriorities(t, store.Categories())
		}
	}
}

// ── SwapAdjacent ─────────────────────────────────────────────────────────────

func TestPriority_SwapAdjacent(t *testing.T) {
	tests := []struct {
		name       string
		priorities []int
		id         string
		direction  Direction
		want       map[string]int
		wantWrites int
	}{
		{
			name:       "up",
			priorities: []int{0, 3, 5},
			id:         "b",
			direction:  DirectionUp,
			want:       map[string]int{"a": 3, "b": 0, "c": 5},
			wantWrites: 2,
		},
		{
			name:       "down",
			priorities: []int{0, 3, 5},
			id:         "b",
			direction:  DirectionDown,
			want:       map[string]int{"a": 0, "b": 5, "c": 3},
			wantWrites: 2,
		},
		{
			name:       "top cannot move up",
			priorities: []int{0, 1},
			id:         "a",
			direction:  DirectionUp,
			want:       map[string]int{"a": 0, "b": 1},
		},
		{
			name:       "bottom cannot move down",
			priorities: []int{0, 1},
			id:         "b",
			direction:  DirectionDown,
			want:       map[string]int{"a": 0, "b": 1},
		},
		{
			name:       "equal priorities renumbered",
			priorities: []int{1, 1},
			id:         "b",
			direction:  DirectionUp,
			want:       map[string]int{"b": 0, "a": 1},
			wantWrites: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryCategoryStore(tt.priorities...)
			p := NewClientPriorityService(store, logger.Nop())

			require.NoError(t, p.SwapAdjacent(context.Background(), tt.id, tt.direction))
			assert.Equal(t, tt.want, store.priorities())
			assert.Len(t, store.writes, tt.wantWrites)
		})
	}
}

func TestPriority_SwapAdjacent_Errors(t *testing.T) {
	store := newMemoryCategoryStore(0, 1)
	p := NewClientPriorityService(store, logger.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, p.SwapAdjacent(ctx, "missing", DirectionUp), ErrCategoryNotFound)

	store.failOn = "a"
	err := p.SwapAdjacent(ctx, "b", DirectionUp)
	assert.True(t, errors.Is(err, ErrUnknownRemote))
}

// ── CompactAfterDeletion / ObserveCategoryCount ──────────────────────────────

func TestPriority_CompactAfterDeletion(t *testing.T) {
	store := newMemoryCategoryStore(0, 2, 5, 9)
	p := NewClientPriorityService(store, logger.Nop())
	ctx := context.Background()

	require.NoError(t, p.CompactAfterDeletion(ctx))
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}, store.priorities())
	assert.Equal(t, []string{"b", "c", "d"}, store.writes)

	store.resetWrites()
	require.NoError(t, p.CompactAfterDeletion(ctx))
	assert.Empty(t, store.writes, "compacting a compact list writes nothing")
}

func TestPriority_ObserveCategoryCount(t *testing.T) {
	store := newMemoryCategoryStore(0, 1, 2)
	p := NewClientPriorityService(store, logger.Nop())
	ctx := context.Background()

	p.ObserveCategoryCount(ctx, 3)
	assert.Empty(t, store.writes, "first observation only sets the baseline")

	store.remove("a")
	p.ObserveCategoryCount(ctx, 2)
	assert.Equal(t, map[string]int{"b": 0, "c": 1}, store.priorities())

	store.resetWrites()
	p.ObserveCategoryCount(ctx, 3)
	assert.Empty(t, store.writes, "growth does not compact")
}
