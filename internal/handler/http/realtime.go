// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	realtimeWriteTimeout = 5 * time.Second
	realtimePingInterval = 30 * time.Second
)

// realtime upgrades the request to a websocket and streams the change
// events of the caller until either side closes.
func (h *Handler) realtime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r, "*Handler.realtime")
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.realtime").Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	sub := h.hub.Subscribe(userID)
	defer h.hub.Unsubscribe(sub)

	// clients never send; CloseRead handles control frames and cancels ctx
	// when the peer goes away
	ctx := conn.CloseRead(r.Context())

	log.Info().Str("func", "*Handler.realtime").Str("user_id", userID).Msg("realtime subscriber connected")

	ping := time.NewTicker(realtimePingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("func", "*Handler.realtime").Str("user_id", userID).Msg("realtime subscriber disconnected")
			return

		case event, open := <-sub.Events():
			if !open {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err = writeWithTimeout(ctx, func(ctx context.Context) error {
				return wsjson.Write(ctx, conn, event)
			}); err != nil {
				log.Warn().Err(err).Str("func", "*Handler.realtime").Str("user_id", userID).Msg("error writing change event")
				return
			}

		case <-ping.C:
			if err = writeWithTimeout(ctx, conn.Ping); err != nil {
				log.Warn().Err(err).Str("func", "*Handler.realtime").Str("user_id", userID).Msg("realtime ping failed")
				return
			}
		}
	}
}

func writeWithTimeout(ctx context.Context, write func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, realtimeWriteTimeout)
	defer cancel()
	return write(ctx)
}
