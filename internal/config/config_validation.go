// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// validate checks source-independent invariants of the merged
// [StructuredConfig]. Binary-specific requirements are checked on
// [ClientConfig] and [ServerConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MaxPostRecords < 0 || cfg.Sync.MaxPostBytes < 0 {
		return fmt.Errorf("%w: negative post limits", ErrInvalidSyncConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	switch {
	case cfg.Sync.RootKey != "":
		key, err := base64.StdEncoding.DecodeString(cfg.Sync.RootKey)
		if err != nil || len(key) != 64 {
			return fmt.Errorf("%w: root key must be base64 of 64 bytes", ErrInvalidSyncConfigs)
		}
	case cfg.Sync.Passphrase != "":
		if _, err := base64.StdEncoding.DecodeString(cfg.Sync.Salt); err != nil || cfg.Sync.Salt == "" {
			return fmt.Errorf("%w: passphrase requires a base64 salt", ErrInvalidSyncConfigs)
		}
	default:
		return fmt.Errorf("%w: root key or passphrase required", ErrInvalidSyncConfigs)
	}

	if len(cfg.Sync.Engines) == 0 {
		return fmt.Errorf("%w: no engines", ErrInvalidSyncConfigs)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
