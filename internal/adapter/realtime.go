// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const realtimePath = "/api/realtime"

const dialTimeout = 10 * time.Second

// Subscribe implements [RemoteStore] over a websocket to GET /api/realtime.
func (h *httpRemoteStore) Subscribe(ctx context.Context, onEvent func(models.ChangeEvent)) (Subscription, error) {
	token := h.Token()
	if token == "" {
		return nil, fmt.Errorf("%w: no access token", ErrUnauthorized)
	}

	dialCtx, cancelDial := context.WithTimeout(ctx, dialTimeout)
	defer cancelDial()

	conn, resp, err := websocket.Dial(dialCtx, websocketURL(h.baseURL), &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + token}},
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: realtime handshake rejected", ErrUnauthorized)
		}
		return nil, mapTransportError("realtime dial", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &websocketSubscription{
		conn:   conn,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go sub.readLoop(subCtx, h, onEvent)

	return sub, nil
}

func websocketURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://") + realtimePath
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://") + realtimePath
	default:
		return baseURL + realtimePath
	}
}

type websocketSubscription struct {
	conn      *websocket.Conn
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func (s *websocketSubscription) readLoop(ctx context.Context, h *httpRemoteStore, onEvent func(models.ChangeEvent)) {
	defer close(s.done)
	defer func() { _ = s.conn.Close(websocket.StatusNormalClosure, "") }()

	for {
		var event models.ChangeEvent
		if err := wsjson.Read(ctx, s.conn, &event); err != nil {
			if ctx.Err() == nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				h.logger.Warn().Err(err).Str("func", "websocketSubscription.readLoop").Msg("realtime feed closed")
			}
			return
		}
		onEvent(event)
	}
}

// Close implements [Subscription]. It does not wait for an in-flight
// onEvent call; use Done for that.
func (s *websocketSubscription) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}

// Done implements [Subscription].
func (s *websocketSubscription) Done() <-chan struct{} {
	return s.done
}
