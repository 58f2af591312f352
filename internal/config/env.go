// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment.
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, nil)
}

// parseEnvFrom fills cfg from environ, falling back to the process
// environment when environ is nil. Keys follow the `env` and `envPrefix`
// tags on [StructuredConfig], so SESSION_ACCESS_TOKEN lands in
// cfg.Session.AccessToken.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
