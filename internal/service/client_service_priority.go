// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
	"golang.org/x/sync/errgroup"
)

type clientPriorityService struct {
	categories CategoryStore
	logger     *logger.Logger

	mu        sync.Mutex
	lastCount int
	observed  bool
}

func NewClientPriorityService(categories CategoryStore, logger *logger.Logger) ClientPriorityService {
	return &clientPriorityService{categories: categories, logger: logger}
}

func (p *clientPriorityService) NextAvailablePriority() int {
	return nextAvailablePriority(p.categories.Categories())
}

// ValidateAssignment parses a priority typed by the user. A value held by
// another category is accepted with a warning; CommitWithReorder resolves
// the collision.
func (p *clientPriorityService) ValidateAssignment(raw string, excludingID string) (PriorityAssignment, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return PriorityAssignment{}, fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	if value < models.MinPriority || value > models.MaxPriority {
		return PriorityAssignment{}, fmt.Errorf("%w: %d not in %d..%d",
			ErrPriorityOutOfRange, value, models.MinPriority, models.MaxPriority)
	}

	assignment := PriorityAssignment{Value: value}
	if holder := priorityHolder(p.categories.Categories(), value, excludingID); holder != nil {
		assignment.ConflictsWith = holder
		assignment.Warning = fmt.Sprintf("priority %d is used by %q; categories will be reordered", value, holder.Name)
	}
	return assignment, nil
}

// CommitWithReorder gives category id the priority desired. When another
// category holds it, every category is renumbered densely with id inserted
// at position min(desired, number of other categories). Only categories
// whose priority changed are written.
func (p *clientPriorityService) CommitWithReorder(ctx context.Context, id string, desired int) error {
	if desired < models.MinPriority || desired > models.MaxPriority {
		return fmt.Errorf("%w: %d", ErrPriorityOutOfRange, desired)
	}

	categories := p.categories.Categories()
	idx := indexOfCategory(categories, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	target := categories[idx]

	if priorityHolder(categories, desired, id) == nil {
		if target.Priority == desired {
			return nil
		}
		return p.categories.UpdateCategory(ctx, id, models.CategoryPatch{Priority: &desired})
	}

	others := make([]models.Category, 0, len(categories)-1)
	for _, c := range categories {
		if c.ID != id {
			others = append(others, c)
		}
	}
	models.SortCategoriesByPriority(others)

	at := min(desired, len(others))
	ordered := make([]models.Category, 0, len(categories))
	ordered = append(ordered, others[:at]...)
	ordered = append(ordered, target)
	ordered = append(ordered, others[at:]...)

	return p.renumber(ctx, ordered, "clientPriorityService.CommitWithReorder")
}

// SwapAdjacent exchanges the priorities of id and its neighbour in
// direction. At either end of the list it does nothing.
func (p *clientPriorityService) SwapAdjacent(ctx context.Context, id string, direction Direction) error {
	categories := p.categories.Categories()
	models.SortCategoriesByPriority(categories)

	idx := indexOfCategory(categories, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}

	neighbour := idx - 1
	if direction == DirectionDown {
		neighbour = idx + 1
	}
	if neighbour < 0 || neighbour >= len(categories) {
		return nil
	}

	a, b := categories[idx], categories[neighbour]
	if a.Priority == b.Priority {
		// equal priorities cannot be exchanged; fall back to list order
		ordered := append([]models.Category(nil), categories...)
		ordered[idx], ordered[neighbour] = ordered[neighbour], ordered[idx]
		return p.renumber(ctx, ordered, "clientPriorityService.SwapAdjacent")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.categories.UpdateCategory(gctx, a.ID, models.CategoryPatch{Priority: &b.Priority})
	})
	g.Go(func() error {
		return p.categories.UpdateCategory(gctx, b.ID, models.CategoryPatch{Priority: &a.Priority})
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "clientPriorityService.SwapAdjacent").
			Str("category_id", id).Msg("error swapping priorities")
		return err
	}
	return nil
}

// CompactAfterDeletion renumbers the categories 0..n-1 in their current
// order. Running it on a compact list writes nothing.
func (p *clientPriorityService) CompactAfterDeletion(ctx context.Context) error {
	categories := p.categories.Categories()
	models.SortCategoriesByPriority(categories)
	return p.renumber(ctx, categories, "clientPriorityService.CompactAfterDeletion")
}

// ObserveCategoryCount compacts priorities once each time the category
// list shrinks.
func (p *clientPriorityService) ObserveCategoryCount(ctx context.Context, count int) {
	p.mu.Lock()
	shrunk := p.observed && count < p.lastCount
	p.lastCount = count
	p.observed = true
	p.mu.Unlock()

	if !shrunk {
		return
	}
	if err := p.CompactAfterDeletion(ctx); err != nil {
		p.logger.Err(err).Str("func", "clientPriorityService.ObserveCategoryCount").
			Msg("error compacting priorities")
	}
}

// renumber assigns priority i to ordered[i] and writes the categories whose
// priority changed, sequentially, in list order.
func (p *clientPriorityService) renumber(ctx context.Context, ordered []models.Category, fn string) error {
	changed := 0
	for i, c := range ordered {
		if c.Priority == i {
			continue
		}
		priority := i
		if err := p.categories.UpdateCategory(ctx, c.ID, models.CategoryPatch{Priority: &priority}); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", fn).Str("category_id", c.ID).
				Msg("error updating category priority")
			return err
		}
		changed++
	}

	p.logger.Debug().Str("func", fn).Int("changed", changed).Msg("priorities renumbered")
	return nil
}
