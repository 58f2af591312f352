// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewLocalID returns an identifier for a record that exists only on this
// device: "<prefix>_<unix-millis>_<random>".
func NewLocalID(prefix string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return prefix + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + random
}

// IsLocalID reports whether id was produced by NewLocalID with prefix.
func IsLocalID(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_")
}
