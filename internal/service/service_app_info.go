// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/models"
)

type appInfoService struct {
	version   string
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports version when set and falls back to the build
// version otherwise.
func NewAppInfoService(version string, buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if version == "" {
		version = buildInfo.BuildVersion()
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		version:   version,
		buildInfo: buildInfo,
		logger:    logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.VersionResponse {
	resp := s.buildInfo.Response()
	resp.Version = s.version
	return resp
}
