// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks invariants shared by both views. The structured config
// is allowed to be partial; each view validates what it needs.
func (cfg *StructuredConfig) validate() error {
	if cfg.Log.MaxSizeMB < 0 {
		return fmt.Errorf("%w: negative log size", ErrInvalidLogConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.LocalDSN == "" || strings.Contains(cfg.Storage.LocalDSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Session.UserID != "" && cfg.Session.AccessToken == "" {
		return ErrInvalidSessionConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.TokenSignKey == "" || cfg.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
