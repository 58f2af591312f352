// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background loops of the client: the periodic
// refresh and the realtime feed watchdog.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// FeedKeeper is the part of the synchronization engine the realtime
// watchdog drives.
type FeedKeeper interface {
	UserID() string
	Subscribed() bool
	Subscribe(ctx context.Context) error
	RefreshData(ctx context.Context) error
}
