// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ItemType is the closed set of item kinds.
type ItemType string

const (
	ItemTypeTodo    ItemType = "todo"
	ItemTypeEvent   ItemType = "event"
	ItemTypeGoal    ItemType = "goal"
	ItemTypeRoutine ItemType = "routine"
	ItemTypeNote    ItemType = "note"
)

// ErrUnknownItemType is returned by ParseItemType for values outside the set.
var ErrUnknownItemType = errors.New("unknown item type")

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeTodo, ItemTypeEvent, ItemTypeGoal, ItemTypeRoutine, ItemTypeNote:
		return true
	}
	return false
}

// ParseItemType converts a raw string into an ItemType.
func ParseItemType(raw string) (ItemType, error) {
	t := ItemType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownItemType, raw)
	}
	return t, nil
}

// ItemPriority is the importance level stored in item metadata.
type ItemPriority string

const (
	ItemPriorityLow    ItemPriority = "low"
	ItemPriorityMedium ItemPriority = "medium"
	ItemPriorityHigh   ItemPriority = "high"
)

// Metadata is the open attribute bag attached to an item.
// It always tolerates unknown keys. The "priority" key is understood by
// the core; the remaining keys are type-specific (start/end times for
// events, targets for goals, schedules for routines).
type Metadata map[string]any

// Priority returns the item priority, defaulting to medium.
func (m Metadata) Priority() ItemPriority {
	if raw, ok := m["priority"].(string); ok {
		switch p := ItemPriority(raw); p {
		case ItemPriorityLow, ItemPriorityMedium, ItemPriorityHigh:
			return p
		}
	}
	return ItemPriorityMedium
}

// Value implements driver.Valuer so Metadata can be stored in a JSONB column.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB columns.
func (m *Metadata) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata source type %T", src)
	}

	out := Metadata{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("error decoding metadata: %w", err)
		}
	}
	*m = out
	return nil
}

// Item is a user-owned entry that belongs to exactly one category.
type Item struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`

	Title string   `json:"title"`
	Text  string   `json:"text"`
	Type  ItemType `json:"type"`

	Completed bool `json:"completed"`

	// CategoryID references a category owned by the same user.
	CategoryID string `json:"category_id"`

	DueDate  *time.Time `json:"due_date,omitempty"`
	DateTime *time.Time `json:"date_time,omitempty"`

	Metadata   Metadata `json:"metadata"`
	Attachment *string  `json:"attachment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}

// ItemInput carries the fields of a new item.
// CategoryID may be a remote id, a slug, a name or an alias; the sync
// engine resolves it before the item reaches the backend.
type ItemInput struct {
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	Type       ItemType   `json:"type"`
	Completed  bool       `json:"completed"`
	CategoryID string     `json:"category_id"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	DateTime   *time.Time `json:"date_time,omitempty"`
	Metadata   Metadata   `json:"metadata,omitempty"`
	Attachment *string    `json:"attachment,omitempty"`
}

// ItemPatch is a partial update of an item. Only non-nil fields are applied.
type ItemPatch struct {
	Title      *string    `json:"title,omitempty"`
	Text       *string    `json:"text,omitempty"`
	Type       *ItemType  `json:"type,omitempty"`
	Completed  *bool      `json:"completed,omitempty"`
	CategoryID *string    `json:"category_id,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	DateTime   *time.Time `json:"date_time,omitempty"`
	Metadata   *Metadata  `json:"metadata,omitempty"`
	Attachment *string    `json:"attachment,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Text == nil && p.Type == nil && p.Completed == nil &&
		p.CategoryID == nil && p.DueDate == nil && p.DateTime == nil &&
		p.Metadata == nil && p.Attachment == nil
}

// Apply returns a copy of it with the patch applied.
func (p ItemPatch) Apply(it Item) Item {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Text != nil {
		it.Text = *p.Text
	}
	if p.Type != nil {
		it.Type = *p.Type
	}
	if p.Completed != nil {
		it.Completed = *p.Completed
	}
	if p.CategoryID != nil {
		it.CategoryID = *p.CategoryID
	}
	if p.DueDate != nil {
		it.DueDate = p.DueDate
	}
	if p.DateTime != nil {
		it.DateTime = p.DateTime
	}
	if p.Metadata != nil {
		it.Metadata = *p.Metadata
	}
	if p.Attachment != nil {
		it.Attachment = p.Attachment
	}
	return it
}

// ItemUpdate pairs an item id with the patch to apply to it.
type ItemUpdate struct {
	ID    string    `json:"id"`
	Patch ItemPatch `json:"patch"`
}

// BulkUpdateResult reports the outcome of a bulk item update per item.
type BulkUpdateResult struct {
	Updated []string          `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// OK reports whether every item was updated.
func (r BulkUpdateResult) OK() bool {
	return len(r.Failed) == 0
}

// DeleteItemsRequest is the body of a bulk delete.
type DeleteItemsRequest struct {
	IDs []string `json:"ids"`
}

// CountResponse carries a single count.
type CountResponse struct {
	Count int `json:"count"`
}
