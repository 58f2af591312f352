// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

// Refresher is the part of the engine the sync job drives.
type Refresher interface {
	RefreshData(ctx context.Context) error
}

type clientSyncJob struct {
	refresher Refresher
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that calls refresher.RefreshData on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(refresher Refresher, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{refresher: refresher, logger: logger}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that calls RefreshData every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.refresher.RefreshData(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Warn().Err(err).Str("func", "clientSyncJob.Start").Msg("periodic refresh failed")
				}
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
