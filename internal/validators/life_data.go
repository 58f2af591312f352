// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-life-keeper/models"
)

// Field name constants used to scope validation to a subset of fields.
const (
	FieldName       = "name"
	FieldPriority   = "priority"
	FieldTitle      = "title"
	FieldType       = "type"
	FieldCategoryID = "category_id"
	FieldMetadata   = "metadata"
	FieldIDs        = "ids"
	FieldItems      = "items"
	FieldPatch      = "patch"
)

const (
	MaxCategoryNameLength = 50
	MaxTitleLength        = 500
)

// LifeDataValidator validates categories, items and the bulk requests
// carrying them. Both value and pointer forms are accepted.
type LifeDataValidator struct{}

func NewLifeDataValidator() Validator {
	return &LifeDataValidator{}
}

// Validate dispatches on the dynamic type of obj. fields restricts the
// checks to the named fields; none means all fields of that type.
func (v *LifeDataValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CategoryInput:
		return v.validateCategoryInput(ctx, value, fields...)
	case *models.CategoryInput:
		return v.validateCategoryInput(ctx, *value, fields...)

	case models.CategoryPatch:
		return v.validateCategoryPatch(ctx, value, fields...)
	case *models.CategoryPatch:
		return v.validateCategoryPatch(ctx, *value, fields...)

	case models.ItemInput:
		return v.validateItemInput(ctx, value, fields...)
	case *models.ItemInput:
		return v.validateItemInput(ctx, *value, fields...)

	case []models.ItemInput:
		return v.validateItemInputs(ctx, value)

	case models.ItemPatch:
		return v.validateItemPatch(ctx, value, fields...)
	case *models.ItemPatch:
		return v.validateItemPatch(ctx, *value, fields...)

	case models.DeleteItemsRequest:
		return v.validateDeleteItemsRequest(ctx, value)
	case *models.DeleteItemsRequest:
		return v.validateDeleteItemsRequest(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

// ValidateCategoryName checks a single category name.
func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategoryName
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}

// ValidatePriority checks that p lies in the assignable priority range.
func ValidatePriority(p int) error {
	if p < models.MinPriority || p > models.MaxPriority {
		return fmt.Errorf("%w: %d not in %d..%d", ErrInvalidPriority, p, models.MinPriority, models.MaxPriority)
	}
	return nil
}

func (v *LifeDataValidator) validateCategoryInput(_ context.Context, in models.CategoryInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPriority}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := ValidateCategoryName(in.Name); err != nil {
				return err
			}
		case FieldPriority:
			if in.Priority < models.MinPriority {
				return ErrInvalidPriority
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LifeDataValidator) validateCategoryPatch(_ context.Context, patch models.CategoryPatch, fields ...string) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPriority}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if patch.Name != nil {
				if err := ValidateCategoryName(*patch.Name); err != nil {
					return err
				}
			}
		case FieldPriority:
			if patch.Priority != nil && *patch.Priority < models.MinPriority {
				return ErrInvalidPriority
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LifeDataValidator) validateItemInput(_ context.Context, in models.ItemInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldType, FieldCategoryID, FieldMetadata}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(in.Title); err != nil {
				return err
			}
		case FieldType:
			if !in.Type.Valid() {
				return ErrInvalidType
			}
		case FieldCategoryID:
			if strings.TrimSpace(in.CategoryID) == "" {
				return ErrEmptyCategoryID
			}
		case FieldMetadata:
			if err := validateMetadata(in.Metadata); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LifeDataValidator) validateItemInputs(ctx context.Context, items []models.ItemInput) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	for i, in := range items {
		if err := v.validateItemInput(ctx, in); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}
	return nil
}

func (v *LifeDataValidator) validateItemPatch(_ context.Context, patch models.ItemPatch, fields ...string) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldType, FieldCategoryID, FieldMetadata}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if patch.Title != nil {
				if err := validateTitle(*patch.Title); err != nil {
					return err
				}
			}
		case FieldType:
			if patch.Type != nil && !patch.Type.Valid() {
				return ErrInvalidType
			}
		case FieldCategoryID:
			if patch.CategoryID != nil && strings.TrimSpace(*patch.CategoryID) == "" {
				return ErrEmptyCategoryID
			}
		case FieldMetadata:
			if patch.Metadata != nil {
				if err := validateMetadata(*patch.Metadata); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LifeDataValidator) validateDeleteItemsRequest(_ context.Context, req models.DeleteItemsRequest) error {
	if len(req.IDs) == 0 {
		return ErrEmptyIDs
	}
	for _, id := range req.IDs {
		if strings.TrimSpace(id) == "" {
			return ErrEmptyID
		}
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// validateMetadata only checks the well-known keys; anything else is
// carried through untouched.
func validateMetadata(m models.Metadata) error {
	raw, ok := m["priority"]
	if !ok {
		return nil
	}
	s, isString := raw.(string)
	if !isString {
		return ErrInvalidItemPriority
	}
	switch models.ItemPriority(s) {
	case models.ItemPriorityLow, models.ItemPriorityMedium, models.ItemPriorityHigh:
		return nil
	}
	return ErrInvalidItemPriority
}
