// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/jackc/pgx/v5"
)

// ChangeChannel is the NOTIFY channel written by the row triggers.
const ChangeChannel = "life_changes"

const (
	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

// ChangeListener holds a dedicated pgx connection that LISTENs on
// [ChangeChannel] and forwards every notification as a [models.ChangeEvent].
type ChangeListener struct {
	dsn    string
	logger *logger.Logger
}

// NewChangeListener constructs a listener for dsn. No connection is made
// until Listen is called.
func NewChangeListener(dsn string, logger *logger.Logger) *ChangeListener {
	return &ChangeListener{dsn: dsn, logger: logger}
}

// Listen blocks until ctx is cancelled. Connection failures are logged and
// retried with exponential backoff.
func (l *ChangeListener) Listen(ctx context.Context, handle func(models.ChangeEvent)) error {
	delay := minReconnectDelay
	for {
		err := l.listenOnce(ctx, handle, func() { delay = minReconnectDelay })
		if ctx.Err() != nil {
			return nil
		}

		l.logger.Err(err).
			Str("func", "ChangeListener.Listen").
			Dur("retry_in", delay).
			Msg("change listener disconnected")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		delay = min(delay*2, maxReconnectDelay)
	}
}

func (l *ChangeListener) listenOnce(ctx context.Context, handle func(models.ChangeEvent), connected func()) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.WithoutCancel(ctx))

	if _, err = conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	connected()
	l.logger.Info().Str("func", "ChangeListener.listenOnce").Msg("listening for row changes")

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		event, err := DecodeChangeNotification(n.Payload)
		if err != nil {
			l.logger.Warn().Err(err).Str("payload", n.Payload).Msg("skipping malformed change notification")
			continue
		}
		handle(event)
	}
}

// DecodeChangeNotification parses a trigger payload.
func DecodeChangeNotification(payload string) (models.ChangeEvent, error) {
	var event models.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return models.ChangeEvent{}, fmt.Errorf("decode change notification: %w", err)
	}
	if event.UserID == "" || event.Table == "" {
		return models.ChangeEvent{}, errors.New("change notification without user or table")
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	return event, nil
}
