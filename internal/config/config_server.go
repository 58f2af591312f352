// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ServerConfig is the backend configuration assembled from [StructuredConfig].
type ServerConfig struct {
	HTTPAddress     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// DSN is the Postgres connection string.
	DSN string

	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration

	Version string

	// Command is the positional command. "issue-token" prints a token for
	// UserID instead of serving.
	Command string
	UserID  string
}

// GetServerConfig builds and validates the server view of the merged
// configuration.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	cfg.applyDefaults()

	serverCfg := &ServerConfig{
		HTTPAddress:     cfg.Server.HTTPAddress,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		DSN:             cfg.Storage.DB.DSN,
		TokenSignKey:    cfg.App.TokenSignKey,
		TokenIssuer:     cfg.App.TokenIssuer,
		TokenDuration:   cfg.App.TokenDuration,
		Version:         cfg.App.Version,
		Command:         cfg.Command,
		UserID:          cfg.Session.UserID,
	}

	return serverCfg, serverCfg.validate()
}
