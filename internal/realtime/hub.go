// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime fans row change events out to the subscribers of the
// user that owns the row.
package realtime

import (
	"sync"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
)

// subscriberBuffer is the number of events queued per subscriber before
// new events are dropped for it.
const subscriberBuffer = 32

// Subscriber receives the change events of one user.
type Subscriber struct {
	userID string
	events chan models.ChangeEvent
	once   sync.Once
}

// Events is closed when the subscriber is removed from the hub.
func (s *Subscriber) Events() <-chan models.ChangeEvent {
	return s.events
}

// Hub routes change events by user id.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]struct{}

	logger *logger.Logger
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscriber]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a subscriber for userID. Callers must pass it to
// Unsubscribe when done.
func (h *Hub) Subscribe(userID string) *Subscriber {
	sub := &Subscriber{userID: userID, events: make(chan models.ChangeEvent, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subscribers[userID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subscribers[userID] = set
	}
	set[sub] = struct{}{}

	h.logger.Debug().Str("func", "Hub.Subscribe").Str("user_id", userID).Int("subscribers", len(set)).
		Msg("realtime subscriber added")
	return sub
}

// Unsubscribe removes sub and closes its event channel. It is safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subscribers[sub.userID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subscribers, sub.userID)
		}
	}
	h.mu.Unlock()

	sub.once.Do(func() { close(sub.events) })
}

// Publish delivers event to every subscriber of event.UserID without
// blocking. A subscriber whose queue is full misses the event.
func (h *Hub) Publish(event models.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[event.UserID] {
		select {
		case sub.events <- event:
		default:
			h.logger.Warn().Str("func", "Hub.Publish").Str("user_id", event.UserID).Str("table", event.Table).
				Msg("subscriber queue full, dropping change event")
		}
	}
}

// Subscribers returns the number of live subscribers of userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

// Close removes every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.subscribers
	h.subscribers = make(map[string]map[*Subscriber]struct{})
	h.mu.Unlock()

	for _, set := range all {
		for sub := range set {
			sub.once.Do(func() { close(sub.events) })
		}
	}
}
