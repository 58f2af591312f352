// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrNoSession       = errors.New("no signed-in user configured")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMigrationFailed = errors.New("legacy data migration failed")
)
