// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Realtime tables.
const (
	TableCategories = "categories"
	TableItems      = "items"
)

// Change actions, as reported by the database trigger.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// ChangeEvent notifies a subscriber that a row of one of its collections
// changed. It carries no row data: receivers refetch the collection.
type ChangeEvent struct {
	Table    string    `json:"table"`
	Action   string    `json:"action"`
	UserID   string    `json:"user_id"`
	RecordID string    `json:"record_id,omitempty"`
	At       time.Time `json:"at"`
}
