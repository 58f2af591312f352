// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
)

// ErrorClassificator decides whether a failed operation may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps *sql.DB with the driver's error classifier and a logger.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// retryDelays are the pauses between attempts of a retryable read.
var retryDelays = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond}

// withRetry runs fn and repeats it while the classifier reports the error
// as retryable. Only idempotent reads go through here.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	for _, delay := range retryDelays {
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("retrying query after transient error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		err = fn()
	}
	return err
}
