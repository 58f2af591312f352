// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_ExplicitVersionWins(t *testing.T) {
	svc, err := NewAppInfoService("1.0.0", models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc"), logger.Nop())
	require.NoError(t, err)

	resp := svc.GetAppVersion(context.Background())
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "2026-01-01", resp.Date)
	assert.Equal(t, "abc", resp.Commit)
}

func TestNewAppInfoService_FallsBackToBuildVersion(t *testing.T) {
	svc, err := NewAppInfoService("", models.NewAppBuildInfo("0.9.0", "", ""), logger.Nop())
	require.NoError(t, err)

	resp := svc.GetAppVersion(context.Background())
	assert.Equal(t, "0.9.0", resp.Version)
	assert.Equal(t, "N/A", resp.Date)
}

func TestNewAppInfoService_NoVersionAnywhere(t *testing.T) {
	svc, err := NewAppInfoService("", models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}
