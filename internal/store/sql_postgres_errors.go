// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification says whether a failed database operation should be
// retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures (connection loss, serialization
	// failure, deadlock).
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not
// *pgconn.PgError are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification].
//
// Retryable codes:
//   - Class 08: connection exceptions
//   - Class 40: transaction rollback, serialization failure, deadlock
//   - 57P03: cannot connect now
//
// Everything else is [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}

// classifyWriteError translates a failed INSERT/UPDATE into a domain
// sentinel. onForeignKey is returned for foreign key violations because
// its meaning depends on the table being written.
func classifyWriteError(err, onForeignKey error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrCategoryNameTaken
	case pgerrcode.ForeignKeyViolation:
		return onForeignKey
	case pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.InvalidTextRepresentation,
		pgerrcode.StringDataRightTruncationDataException,
		pgerrcode.DatetimeFieldOverflow:
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
