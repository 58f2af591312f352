// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCategoryNameTaken is returned when the user already owns a category
	// with the same name, compared case-insensitively.
	ErrCategoryNameTaken = errors.New("category name already exists")

	// ErrCategoryNotFound is returned when a category (identified by id and
	// user_id) does not exist, including when an item references one.
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrItemNotFound is returned when an update targets an item that does
	// not exist for the user.
	ErrItemNotFound = errors.New("item was not found")

	// ErrProfileNotFound is returned when the user's profile row is missing.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrConstraintViolation is returned when a write violates a check,
	// not-null or type constraint of the schema.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrNothingToUpdate is returned for empty patches.
	ErrNothingToUpdate = errors.New("nothing to update")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrPreparingStatement is returned when a statement cannot be prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared statement fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
