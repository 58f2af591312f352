// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKeyValueStore(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "local.db")

	storages, err := NewClientStorages(ctx, dsn, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	kv := storages.KeyValue

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "b", "1"))
	require.NoError(t, kv.Set(ctx, "a", "2"))
	require.NoError(t, kv.Set(ctx, "b", "3"))

	v, ok, err := kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, kv.Delete(ctx, "a"))
	keys, err = kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestNewClientStorages_InMemory(t *testing.T) {
	storages, err := NewClientStorages(context.Background(), "", logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, storages.Local)
	assert.NoError(t, storages.Close())
}
