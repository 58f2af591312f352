// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscriber) models.ChangeEvent {
	t.Helper()
	select {
	case e, ok := <-sub.Events():
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return models.ChangeEvent{}
	}
}

func assertNoEvent(t *testing.T, sub *Subscriber) {
	t.Helper()
	select {
	case e := <-sub.Events():
		t.Fatalf("unexpected event %+v", e)
	default:
	}
}

func TestHub_PublishRoutesByUser(t *testing.T) {
	h := NewHub(logger.Nop())
	alice1 := h.Subscribe("alice")
	alice2 := h.Subscribe("alice")
	bob := h.Subscribe("bob")

	h.Publish(models.ChangeEvent{Table: models.TableItems, Action: models.ActionInsert, UserID: "alice"})

	assert.Equal(t, "alice", receive(t, alice1).UserID)
	assert.Equal(t, models.TableItems, receive(t, alice2).Table)
	assertNoEvent(t, bob)
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	h := NewHub(logger.Nop())
	assert.NotPanics(t, func() {
		h.Publish(models.ChangeEvent{Table: models.TableCategories, UserID: "nobody"})
	})
}

func TestHub_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub(logger.Nop())
	sub := h.Subscribe("alice")

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			h.Publish(models.ChangeEvent{Table: models.TableItems, UserID: "alice"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, sub.Events(), subscriberBuffer)
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub(logger.Nop())
	sub := h.Subscribe("alice")
	require.Equal(t, 1, h.Subscribers("alice"))

	h.Unsubscribe(sub)
	h.Unsubscribe(sub)

	assert.Zero(t, h.Subscribers("alice"))
	_, ok := <-sub.Events()
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		h.Publish(models.ChangeEvent{Table: models.TableItems, UserID: "alice"})
	})
}

func TestHub_Close(t *testing.T) {
	h := NewHub(logger.Nop())
	a := h.Subscribe("alice")
	b := h.Subscribe("bob")

	h.Close()

	_, ok := <-a.Events()
	assert.False(t, ok)
	_, ok = <-b.Events()
	assert.False(t, ok)
	assert.NotPanics(t, func() { h.Unsubscribe(a) })
}

func TestHub_ConcurrentPublishAndUnsubscribe(t *testing.T) {
	h := NewHub(logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		sub := h.Subscribe("alice")
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Publish(models.ChangeEvent{Table: models.TableItems, UserID: "alice"})
			}
		}()
		go func() {
			defer wg.Done()
			h.Unsubscribe(sub)
		}()
	}
	wg.Wait()
	assert.Zero(t, h.Subscribers("alice"))
}
