// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
)

const defaultWatchInterval = 15 * time.Second

type realtimeWorker struct {
	feed     FeedKeeper
	interval time.Duration
	logger   *logger.Logger
}

// NewRealtimeWorker returns a worker that reopens the realtime feed when it
// drops. Changes missed while the feed was closed are picked up by a full
// refresh after every successful resubscribe.
func NewRealtimeWorker(feed FeedKeeper, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	return &realtimeWorker{feed: feed, interval: interval, logger: logger}
}

func (w *realtimeWorker) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.check(ctx)
		}
	}
}

func (w *realtimeWorker) check(ctx context.Context) {
	if w.feed.UserID() == "" || w.feed.Subscribed() {
		return
	}

	if err := w.feed.Subscribe(ctx); err != nil {
		w.logger.Warn().Err(err).Str("func", "realtimeWorker.check").Msg("resubscribe failed")
		return
	}
	w.logger.Info().Str("func", "realtimeWorker.check").Msg("realtime feed reopened")

	if err := w.feed.RefreshData(ctx); err != nil && ctx.Err() == nil {
		w.logger.Warn().Err(err).Str("func", "realtimeWorker.check").Msg("refresh after resubscribe failed")
	}
}
