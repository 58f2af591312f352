// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// go-life-keeper server and client. It is populated by merging environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and application-level switches.
	App App `envPrefix:"APP_"`

	// Storage holds the backend Postgres DSN and the client's local
	// SQLite path.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the backend.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the backend URL and timeout used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Session holds the signed-in user of the client, if any.
	Session Session `envPrefix:"SESSION_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the client log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Command is the first positional argument left after flag parsing.
	Command string `env:"-"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the HMAC key used to sign and verify access tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of tokens minted by the server tooling.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// ProvisionDefaults makes the client create a starter set of
	// categories for a user that has none and no legacy data.
	// Env: APP_PROVISION_DEFAULTS
	ProvisionDefaults bool `env:"PROVISION_DEFAULTS"`
}

// Storage groups the configuration of all storage backends.
type Storage struct {
	// DB is the backend relational database.
	DB DB `envPrefix:"DB_"`

	// Local is the client's on-device key/value database.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the backend Postgres database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client's SQLite settings.
type Local struct {
	// DSN is the SQLite file path (e.g. "life-keeper.db").
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings of the backend.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter holds the client's view of the backend.
type Adapter struct {
	// HTTPAddress is the backend base URL or "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Session identifies the signed-in user of the client.
// Both fields may be empty: the client then runs against the global
// local slot only.
type Session struct {
	// UserID overrides the subject read from AccessToken.
	// Env: SESSION_USER_ID
	UserID string `env:"USER_ID"`

	// AccessToken is the bearer token presented to the backend.
	// Env: SESSION_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// SyncInterval is the period of the client's safety-net refresh.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Log holds the client log file settings.
type Log struct {
	// File is the rotating log file path.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// MaxSizeMB is the rotation threshold.
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`
}

// Defaults applied by the client and server views for unset fields.
const (
	DefaultServerAddress   = "localhost:8080"
	DefaultRequestTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultSyncInterval    = time.Minute
	DefaultLocalDSN        = "life-keeper.db"
	DefaultTokenIssuer     = "go-life-keeper"
	DefaultTokenDuration   = 24 * time.Hour
)

// applyDefaults fills zero fields with their defaults.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultServerAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = DefaultServerAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Storage.Local.DSN == "" {
		cfg.Storage.Local.DSN = DefaultLocalDSN
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
}

// GetStructuredConfig loads and merges the configuration from all sources
// in the following priority order (later sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
