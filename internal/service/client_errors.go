// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrInvalidCategoryName   = errors.New("invalid category name")
	ErrDuplicateCategoryName = errors.New("category name already exists")
	ErrProfileUnavailable    = errors.New("user profile is not available")
	ErrConstraintViolation   = errors.New("data constraint violation")
	ErrUnknownRemote         = errors.New("unknown remote error")
	ErrOffline               = errors.New("remote store is unreachable")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNotResolved = errors.New("category reference could not be resolved")
	ErrItemNotFound        = errors.New("item not found")
	ErrItemRejected        = errors.New("item rejected")
	ErrPartialBulkUpdate   = errors.New("some items were not updated")

	ErrInvalidPriority    = errors.New("priority must be a whole number")
	ErrPriorityOutOfRange = errors.New("priority is out of range")

	ErrNoMigrationBackup = errors.New("no migration backup found")
)
