// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
)

// legacyTimeLayouts are the string forms the legacy application wrote.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// legacyTime decodes a date stored either as an ISO string or as epoch
// milliseconds. null, empty and unrecognised values decode to no time; an
// unrecognised value is kept in invalid for logging.
type legacyTime struct {
	t       *time.Time
	invalid string
}

func (lt *legacyTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		lt.t = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t, ok := parseLegacyTime(s)
		if !ok {
			lt.t, lt.invalid = nil, s
			return nil
		}
		lt.t = t
		return nil
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		lt.t, lt.invalid = nil, string(data)
		return nil
	}
	t := time.UnixMilli(int64(ms)).UTC()
	lt.t = &t
	return nil
}

func parseLegacyTime(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.UnixMilli(ms).UTC()
		return &t, true
	}
	return nil, false
}

type legacyCategoryRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	Color     string     `json:"color"`
	Priority  int        `json:"priority"`
	CreatedAt legacyTime `json:"createdAt"`
	UpdatedAt legacyTime `json:"updatedAt"`
}

type legacyItemRecord struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Type       string         `json:"type"`
	Completed  bool           `json:"completed"`
	CategoryID string         `json:"categoryId"`
	DueDate    legacyTime     `json:"dueDate"`
	DateTime   legacyTime     `json:"dateTime"`
	Metadata   map[string]any `json:"metadata"`
	Attachment *string        `json:"attachment"`
	CreatedAt  legacyTime     `json:"createdAt"`
	UpdatedAt  legacyTime     `json:"updatedAt"`
}

// legacyMetadataTimes are metadata keys holding dates.
var legacyMetadataTimes = []string{"startTime", "endTime"}

// warnInvalidDates logs the date fields of one legacy record that could not
// be read. Those fields are migrated empty.
func warnInvalidDates(log *logger.Logger, kind, id string, fields map[string]legacyTime) {
	for name, lt := range fields {
		if lt.invalid == "" {
			continue
		}
		log.Warn().Str("func", "decodeLegacy").Str("record", kind).Str("id", id).
			Str("field", name).Str("value", lt.invalid).Msg("unrecognised legacy date, dropping it")
	}
}

func decodeLegacyCategories(raw []byte, log *logger.Logger) ([]models.LegacyCategory, error) {
	var records []legacyCategoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	out := make([]models.LegacyCategory, 0, len(records))
	for _, r := range records {
		warnInvalidDates(log, "category", r.ID, map[string]legacyTime{"createdAt": r.CreatedAt, "updatedAt": r.UpdatedAt})
		out = append(out, models.LegacyCategory{
			ID:        r.ID,
			Name:      r.Name,
			Icon:      r.Icon,
			Color:     r.Color,
			Priority:  r.Priority,
			CreatedAt: r.CreatedAt.t,
			UpdatedAt: r.UpdatedAt.t,
		})
	}
	return out, nil
}

func decodeLegacyItems(raw []byte, log *logger.Logger) ([]models.LegacyItem, error) {
	var records []legacyItemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	out := make([]models.LegacyItem, 0, len(records))
	for _, r := range records {
		warnInvalidDates(log, "item", r.ID, map[string]legacyTime{
			"dueDate": r.DueDate, "dateTime": r.DateTime, "createdAt": r.CreatedAt, "updatedAt": r.UpdatedAt,
		})
		metadata := rehydrateMetadata(r.Metadata, r.ID, log)
		out = append(out, models.LegacyItem{
			ID:         r.ID,
			Title:      r.Title,
			Text:       r.Text,
			Type:       r.Type,
			Completed:  r.Completed,
			CategoryID: r.CategoryID,
			DueDate:    r.DueDate.t,
			DateTime:   r.DateTime.t,
			Metadata:   metadata,
			Attachment: r.Attachment,
			CreatedAt:  r.CreatedAt.t,
			UpdatedAt:  r.UpdatedAt.t,
		})
	}
	return out, nil
}

// rehydrateMetadata replaces string or numeric dates under the known time
// keys with time.Time values. Unrecognised dates are removed.
func rehydrateMetadata(m map[string]any, itemID string, log *logger.Logger) map[string]any {
	if m == nil {
		return nil
	}
	for _, key := range legacyMetadataTimes {
		raw, ok := m[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case string:
			t, ok := parseLegacyTime(v)
			if !ok {
				log.Warn().Str("func", "rehydrateMetadata").Str("id", itemID).Str("field", key).
					Str("value", v).Msg("unrecognised legacy date, dropping it")
				delete(m, key)
				continue
			}
			if t != nil {
				m[key] = *t
			}
		case float64:
			m[key] = time.UnixMilli(int64(v)).UTC()
		}
	}
	return m
}
