// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientConfig is the client configuration assembled from [StructuredConfig].
type ClientConfig struct {
	Adapter struct {
		// HTTPAddress is the backend base URL.
		HTTPAddress string
		// RequestTimeout is the default timeout for outbound requests.
		RequestTimeout time.Duration
	}

	Storage struct {
		// LocalDSN is the SQLite file holding the key/value store.
		LocalDSN string
	}

	Session struct {
		UserID      string
		AccessToken string
	}

	Workers struct {
		// SyncInterval defines how often the refresh job runs.
		SyncInterval time.Duration
	}

	Log struct {
		File      string
		MaxSizeMB int
	}

	// ProvisionDefaults enables the starter category set for new users.
	ProvisionDefaults bool

	// Command is the positional command (run, restore-backup, ...).
	Command string
}

// GetClientConfig builds and validates the client view of the merged
// configuration. args are the command-line arguments without the program
// name.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	cfg.applyDefaults()

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		ProvisionDefaults: cfg.App.ProvisionDefaults,
		Command:           cfg.Command,
	}
	clientCfg.Adapter.HTTPAddress = cfg.Adapter.HTTPAddress
	clientCfg.Adapter.RequestTimeout = cfg.Adapter.RequestTimeout
	clientCfg.Storage.LocalDSN = cfg.Storage.Local.DSN
	clientCfg.Session.UserID = cfg.Session.UserID
	clientCfg.Session.AccessToken = cfg.Session.AccessToken
	clientCfg.Workers.SyncInterval = cfg.Workers.SyncInterval
	clientCfg.Log.File = cfg.Log.File
	clientCfg.Log.MaxSizeMB = cfg.Log.MaxSizeMB

	return clientCfg
}
