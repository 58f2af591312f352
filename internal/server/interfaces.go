// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"

	"github.com/MKhiriev/go-life-keeper/models"
)

// Server is the lifecycle of the backend process.
type Server interface {
	// Run serves until ctx is cancelled or a termination signal arrives,
	// then shuts down gracefully.
	Run(ctx context.Context) error

	// RunServer is Run with a background context; errors are logged.
	RunServer()

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown()
}

// ChangeSource produces row change events until ctx is cancelled.
type ChangeSource interface {
	Listen(ctx context.Context, handle func(models.ChangeEvent)) error
}
