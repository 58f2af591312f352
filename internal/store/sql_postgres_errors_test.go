// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.DeadlockDetected)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.ConnectionFailure)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
}

func TestClassifyWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", pgError(pgerrcode.UniqueViolation), ErrCategoryNameTaken},
		{"foreign key", pgError(pgerrcode.ForeignKeyViolation), ErrProfileNotFound},
		{"check", pgError(pgerrcode.CheckViolation), ErrConstraintViolation},
		{"not null", pgError(pgerrcode.NotNullViolation), ErrConstraintViolation},
		{"bad uuid", pgError(pgerrcode.InvalidTextRepresentation), ErrConstraintViolation},
		{"other", errors.New("boom"), ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyWriteError(tt.err, ErrProfileNotFound), tt.want)
		})
	}
}
