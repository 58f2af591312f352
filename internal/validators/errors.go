// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyCategoryName   = errors.New("category name is required")
	ErrCategoryNameTooLong = errors.New("category name is too long")
	ErrInvalidPriority     = errors.New("priority is out of range")
	ErrEmptyTitle          = errors.New("item title is required")
	ErrTitleTooLong        = errors.New("item title is too long")
	ErrInvalidType         = errors.New("invalid item type")
	ErrEmptyCategoryID     = errors.New("category id is required")
	ErrInvalidItemPriority = errors.New("invalid item priority")
	ErrEmptyIDs            = errors.New("IDs list cannot be empty")
	ErrEmptyID             = errors.New("empty id in list")
	ErrEmptyItems          = errors.New("items list cannot be empty")
	ErrNoFieldsToUpdate    = errors.New("at least one field must be provided for update")
)
