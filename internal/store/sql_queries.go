// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-life-keeper/models"
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	categoryColumns = []string{"id", "user_id", "name", "icon", "color", "priority", "created_at", "updated_at"}
	itemColumns     = []string{
		"id", "user_id", "category_id", "title", "text", "type", "completed",
		"due_date", "date_time", "metadata", "attachment", "created_at", "updated_at",
	}
	profileColumns = []string{"user_id", "onboarding_completed", "created_at", "updated_at"}
)

const (
	upsertProfile = `INSERT INTO profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = profiles.updated_at
		RETURNING user_id, onboarding_completed, created_at, updated_at;`

	getProfile = `SELECT user_id, onboarding_completed, created_at, updated_at
		FROM profiles
		WHERE user_id = $1;`

	insertItem = `INSERT INTO items (
			user_id, category_id, title, text, type, completed, due_date, date_time, metadata, attachment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, category_id, title, text, type, completed,
			due_date, date_time, metadata, attachment, created_at, updated_at;`
)

func buildListCategoriesQuery(userID string) (string, []any, error) {
	return psql.Select(categoryColumns...).
		From(models.Category{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("priority ASC", "created_at ASC").
		ToSql()
}

func buildInsertCategoryQuery(userID string, in models.CategoryInput) (string, []any, error) {
	return psql.Insert(models.Category{}.TableName()).
		Columns("user_id", "name", "icon", "color", "priority").
		Values(userID, in.Name, in.Icon, in.Color, in.Priority).
		Suffix("RETURNING " + joinColumns(categoryColumns)).
		ToSql()
}

func buildUpdateCategoryQuery(userID, id string, patch models.CategoryPatch) (string, []any, error) {
	set := map[string]any{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Icon != nil {
		set["icon"] = *patch.Icon
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if len(set) == 0 {
		return "", nil, ErrNothingToUpdate
	}
	set["updated_at"] = sq.Expr("NOW()")

	return psql.Update(models.Category{}.TableName()).
		SetMap(set).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + joinColumns(categoryColumns)).
		ToSql()
}

func buildDeleteCategoryQuery(userID, id string) (string, []any, error) {
	return psql.Delete(models.Category{}.TableName()).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

func buildCountItemsQuery(userID, categoryID string) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From(models.Item{}.TableName()).
		Where(sq.Eq{"user_id": userID, "category_id": categoryID}).
		ToSql()
}

func buildListItemsQuery(userID string) (string, []any, error) {
	return psql.Select(itemColumns...).
		From(models.Item{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
}

func buildUpdateItemQuery(userID, id string, patch models.ItemPatch) (string, []any, error) {
	set := map[string]any{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Type != nil {
		set["type"] = string(*patch.Type)
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.CategoryID != nil {
		set["category_id"] = *patch.CategoryID
	}
	if patch.DueDate != nil {
		set["due_date"] = *patch.DueDate
	}
	if patch.DateTime != nil {
		set["date_time"] = *patch.DateTime
	}
	if patch.Metadata != nil {
		set["metadata"] = *patch.Metadata
	}
	if patch.Attachment != nil {
		set["attachment"] = *patch.Attachment
	}
	if len(set) == 0 {
		return "", nil, ErrNothingToUpdate
	}
	set["updated_at"] = sq.Expr("NOW()")

	return psql.Update(models.Item{}.TableName()).
		SetMap(set).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + joinColumns(itemColumns)).
		ToSql()
}

func buildDeleteItemsQuery(userID string, ids []string) (string, []any, error) {
	if len(ids) == 0 {
		return "", nil, fmt.Errorf("%w: no ids", ErrBuildingSQLQuery)
	}
	return psql.Delete(models.Item{}.TableName()).
		Where(sq.Eq{"user_id": userID, "id": ids}).
		ToSql()
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

// nullTime converts an optional time into a driver value.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.Priority, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanItem(row rowScanner) (models.Item, error) {
	var (
		it         models.Item
		itemType   string
		attachment *string
	)
	err := row.Scan(
		&it.ID, &it.UserID, &it.CategoryID, &it.Title, &it.Text, &itemType, &it.Completed,
		&it.DueDate, &it.DateTime, &it.Metadata, &attachment, &it.CreatedAt, &it.UpdatedAt,
	)
	it.Type = models.ItemType(itemType)
	it.Attachment = attachment
	return it, err
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.UserID, &p.OnboardingCompleted, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
