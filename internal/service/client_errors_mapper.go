// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-life-keeper/internal/adapter"
	"github.com/MKhiriev/go-life-keeper/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if adapter.IsNetworkError(err) {
		return fmt.Errorf("%w: %w", ErrOffline, err)
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgNoUserIDProvided:
			return ErrValidationNoUserID
		}
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)

	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgProfileNotFound:
			return fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
		case app.MsgItemNotFound:
			return fmt.Errorf("%w: %w", ErrItemNotFound, err)
		}
		return fmt.Errorf("%w: %w", ErrCategoryNotFound, err)

	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrDuplicateCategoryName, err)

	case errors.Is(err, adapter.ErrUnprocessable):
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}

	return fmt.Errorf("%w: %w", ErrUnknownRemote, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
