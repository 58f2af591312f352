// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRefresher counts RefreshData calls.
type spyRefresher struct {
	calls atomic.Int64
	err   error
}

func (s *spyRefresher) RefreshData(_ context.Context) error {
	s.calls.Add(1)
	return s.err
}

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	job := NewClientSyncJob(&spyRefresher{}, logger.Nop())
	require.NotNil(t, job)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_CallsRefresh(t *testing.T) {
	spy := &spyRefresher{}
	job := NewClientSyncJob(spy, logger.Nop())

	// 10ms interval, roughly 5 ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "RefreshData called %d times", got)
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyRefresher{}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls after Stop")
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spyRefresher{}, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spyRefresher{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_Start_DefaultInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spyRefresher{}
		job := NewClientSyncJob(spy, logger.Nop())
		ctx, cancel := context.WithCancel(context.Background())

		job.Start(ctx, interval)
		time.Sleep(20 * time.Millisecond)
		cancel()
		job.Stop()

		assert.Equal(t, int64(0), spy.calls.Load(), "interval %v falls back to the default", interval)
	}
}

func TestClientSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spyRefresher{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestClientSyncJob_ContextCancel_StopsJob(t *testing.T) {
	job := NewClientSyncJob(&spyRefresher{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestClientSyncJob_RefreshError_DoesNotStopJob(t *testing.T) {
	spy := &spyRefresher{err: assert.AnError}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}
