// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
)

// Base keys used on the device.
const (
	KeyCategories        = "lifeStructureCategories"
	KeyItems             = "lifeStructureItems"
	KeyMigrationComplete = "lifeStructureMigrationComplete"
	KeyMigrationBackup   = "lifeStructureMigrationBackup"

	// KeyDefaultsProvisioned marks a user whose starter categories were created.
	KeyDefaultsProvisioned = "lifeStructureDefaultsProvisioned"
)

const userPartitionSeparator = "_user_"

// PartitionKey returns the storage key for baseKey in the partition of
// userID. An empty userID selects the global slot.
func PartitionKey(baseKey, userID string) string {
	if userID == "" {
		return baseKey
	}
	return baseKey + userPartitionSeparator + userID
}

// LocalStore is the user-partitioned, JSON-encoded view over a
// [KeyValueStore]. Reads never fail because of stored content: corrupt
// entries are reported as missing.
type LocalStore struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewLocalStore(kv KeyValueStore, logger *logger.Logger) *LocalStore {
	return &LocalStore{kv: kv, logger: logger}
}

// ReadRaw returns the stored string for baseKey without decoding it.
func (s *LocalStore) ReadRaw(ctx context.Context, userID, baseKey string) (string, bool) {
	key := PartitionKey(baseKey, userID)
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Err(err).Str("func", "LocalStore.ReadRaw").Str("key", key).Msg("error reading local value")
		return "", false
	}
	return value, ok
}

// ReadValue decodes the JSON value stored for baseKey into T. A missing key
// yields def. When decoding fails a string def gets the raw stored text;
// any other T gets def and the corrupt entry is removed.
func ReadValue[T any](ctx context.Context, s *LocalStore, userID, baseKey string, def T) T {
	raw, ok := s.ReadRaw(ctx, userID, baseKey)
	if !ok {
		return def
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out
	}

	if str, isString := any(&out).(*string); isString {
		*str = raw
		return out
	}

	key := PartitionKey(baseKey, userID)
	s.logger.Warn().Str("func", "ReadValue").Str("key", key).Msg("removing corrupt local value")
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Err(err).Str("func", "ReadValue").Str("key", key).Msg("error removing corrupt local value")
	}
	return def
}

// Write stores value as JSON. Failures are logged, not returned.
func (s *LocalStore) Write(ctx context.Context, userID, baseKey string, value any) {
	key := PartitionKey(baseKey, userID)

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Err(err).Str("func", "LocalStore.Write").Str("key", key).Msg("error encoding local value")
		return
	}
	if err = s.kv.Set(ctx, key, string(data)); err != nil {
		s.logger.Err(err).Str("func", "LocalStore.Write").Str("key", key).Msg("error writing local value")
	}
}

// Remove deletes baseKey from the partition of userID.
func (s *LocalStore) Remove(ctx context.Context, userID, baseKey string) {
	key := PartitionKey(baseKey, userID)
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Err(err).Str("func", "LocalStore.Remove").Str("key", key).Msg("error removing local value")
	}
}

// ClearAll removes every key in the partition of userID. Keys of other
// users, including ids sharing a prefix, and global keys are kept.
func (s *LocalStore) ClearAll(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	keys, err := s.kv.Keys(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "LocalStore.ClearAll").Str("user_id", userID).Msg("error listing local keys")
		return
	}

	suffix := userPartitionSeparator + userID
	for _, key := range keys {
		if !strings.HasSuffix(key, suffix) {
			continue
		}
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Err(err).Str("func", "LocalStore.ClearAll").Str("key", key).Msg("error removing local value")
		}
	}
}
