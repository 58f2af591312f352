// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MigrationPhase is a step of the one-time legacy data migration.
type MigrationPhase string

const (
	PhaseChecking   MigrationPhase = "checking"
	PhaseCategories MigrationPhase = "categories"
	PhaseItems      MigrationPhase = "items"
	PhaseCleanup    MigrationPhase = "cleanup"
	PhaseComplete   MigrationPhase = "complete"
	PhaseError      MigrationPhase = "error"
)

// MigrationProgress is reported to the progress callback.
type MigrationProgress struct {
	Phase    MigrationPhase `json:"phase"`
	Progress int            `json:"progress"`
	Message  string         `json:"message"`
}

// MigrationResult summarises a migration run.
// Success is true only when Errors is empty.
type MigrationResult struct {
	Success            bool     `json:"success"`
	CategoriesMigrated int      `json:"categories_migrated"`
	ItemsMigrated      int      `json:"items_migrated"`
	Errors             []string `json:"errors"`
}

// LegacyCategory is a category as stored by the local-only application.
type LegacyCategory struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	Color     string     `json:"color"`
	Priority  int        `json:"priority"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// LegacyItem is an item as stored by the local-only application.
type LegacyItem struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Type       string         `json:"type"`
	Completed  bool           `json:"completed"`
	CategoryID string         `json:"categoryId"`
	DueDate    *time.Time     `json:"dueDate,omitempty"`
	DateTime   *time.Time     `json:"dateTime,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Attachment *string        `json:"attachment,omitempty"`
	CreatedAt  *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time     `json:"updatedAt,omitempty"`
}

// LegacyData is the legacy dataset found on the device.
type LegacyData struct {
	Categories []LegacyCategory `json:"categories"`
	Items      []LegacyItem     `json:"items"`
	HasData    bool             `json:"has_data"`
}

// MigrationBackup is the snapshot written before legacy keys are removed.
type MigrationBackup struct {
	Timestamp  time.Time        `json:"timestamp"`
	Categories []LegacyCategory `json:"categories"`
	Items      []LegacyItem     `json:"items"`
}
