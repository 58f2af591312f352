// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks category and item payloads before they reach
// the remote store or the database. The same rules run on the client and on
// the backend, so a payload the client accepts is never rejected as invalid
// by the server.
package validators

import "context"

// Validator checks a category or item payload. fields restricts the check
// to the named fields; an empty list checks everything.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
