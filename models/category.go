// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"sort"
	"strings"
	"time"
)

// MinPriority and MaxPriority bound the values a user may assign by hand.
// Dense renumbering after a reorder may legitimately exceed MaxPriority
// when a user owns more than MaxPriority+1 categories.
const (
	MinPriority = 0
	MaxPriority = 10
)

// Category is a user-owned grouping for items.
//
// Category names are unique per user, compared case-insensitively.
// Priorities are non-negative and no two categories of the same user
// share a priority once a reorder has completed.
type Category struct {
	// ID is the backend-assigned identifier. Locally created records that
	// have not reached the backend yet carry a "cat_" prefixed local id.
	ID string `json:"id"`

	// UserID is the owner of the category. Populated by the backend.
	UserID string `json:"user_id,omitempty"`

	// Name is the display name, unique per user (case-insensitive).
	Name string `json:"name"`

	// Icon is an opaque icon token chosen by the user.
	Icon string `json:"icon"`

	// Color is an opaque color token chosen by the user.
	Color string `json:"color"`

	// Priority orders categories, lowest first.
	Priority int `json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}

// SameName reports whether name matches the category name case-insensitively.
func (c Category) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}

// CategoryInput carries the user-supplied fields of a new category.
type CategoryInput struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Priority int    `json:"priority"`
}

// CategoryPatch is a partial update of a category.
// Only non-nil fields are applied.
type CategoryPatch struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Color    *string `json:"color,omitempty"`
	Priority *int    `json:"priority,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Icon == nil && p.Color == nil && p.Priority == nil
}

// Apply returns a copy of c with the patch applied.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	return c
}

// SortCategoriesByPriority sorts categories in place by ascending priority.
// Ties keep creation order, then name order.
func SortCategoriesByPriority(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Priority != categories[j].Priority {
			return categories[i].Priority < categories[j].Priority
		}
		if !categories[i].CreatedAt.Equal(categories[j].CreatedAt) {
			return categories[i].CreatedAt.Before(categories[j].CreatedAt)
		}
		return categories[i].Name < categories[j].Name
	})
}
