package config

import (
	"fmt"
	"time"
)

// Client defaults applied when no source sets a value.
const (
	DefaultClientRequestTimeout = 30 * time.Second
	DefaultSyncInterval         = 5 * time.Minute
)

// DefaultEngines is the engine list used when none is configured.
var DefaultEngines = []string{"passwords"}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the storage endpoint URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// AuthToken is the bearer token attached to every request.
	AuthToken string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync holds key material and upload preferences.
type ClientSync struct {
	RootKey     string
	Passphrase  string
	Salt        string
	Engines     []string
	FullyAtomic bool
	// MaxPostRecords and MaxPostBytes override the server limits when lower.
	MaxPostRecords int
	MaxPostBytes   int
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync job runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the storage endpoint and credentials.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains key material and engine selection.
	Sync ClientSync
	// Workers contains background job settings.
	Workers ClientWorkers
	// LogLevel is applied with logger.SetLevel.
	LogLevel string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			AuthToken:      cfg.Adapter.AuthToken,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			RootKey:        cfg.Sync.RootKey,
			Passphrase:     cfg.Sync.Passphrase,
			Salt:           cfg.Sync.Salt,
			Engines:        cfg.Sync.Engines,
			FullyAtomic:    cfg.Sync.FullyAtomic,
			MaxPostRecords: cfg.Sync.MaxPostRecords,
			MaxPostBytes:   cfg.Sync.MaxPostBytes,
		},
		Workers:  ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		LogLevel: cfg.LogLevel,
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultClientRequestTimeout
	}
	if clientCfg.Workers.SyncInterval == 0 {
		clientCfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if len(clientCfg.Sync.Engines) == 0 {
		clientCfg.Sync.Engines = DefaultEngines
	}

	return clientCfg
}
