// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment. See [parseEnvFrom].
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom populates cfg from environ using the `env` and `envPrefix`
// tags of [StructuredConfig]. Engine names are trimmed and empty entries
// dropped, the same way the -engines flag is read.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if len(cfg.Sync.Engines) > 0 {
		cfg.Sync.Engines = splitList(strings.Join(cfg.Sync.Engines, ","))
	}
	return nil
}
