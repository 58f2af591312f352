// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/service"
)

type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

// NewSyncWorker runs job with the given interval for as long as the worker runs.
func NewSyncWorker(job service.ClientSyncJob, interval time.Duration) Worker {
	return &syncWorker{job: job, interval: interval}
}

func (w *syncWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.interval)
	<-ctx.Done()
	w.job.Stop()
}
