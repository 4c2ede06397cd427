package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync15/models"
)

func validRootKey() string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 64)))
}

// ── client ───────────────────────────────────────────────────────────────────

func TestNewClientConfig_AppliesDefaults(t *testing.T) {
	cfg := newClientConfig(&StructuredConfig{
		Adapter: Adapter{HTTPAddress: "http://localhost:8080/1.5/1"},
		Storage: Storage{DB: DB{DSN: "sync.db"}},
		Sync:    Sync{RootKey: validRootKey()},
	})

	assert.Equal(t, DefaultClientRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultEngines, cfg.Sync.Engines)
	assert.NoError(t, cfg.validate())
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			Adapter: ClientAdapter{HTTPAddress: "http://localhost", RequestTimeout: time.Second},
			Storage: ClientStorage{DB: ClientDB{DSN: "sync.db"}},
			Sync:    ClientSync{RootKey: validRootKey(), Engines: []string{"passwords"}},
			Workers: ClientWorkers{SyncInterval: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{
			name:    "empty dsn",
			mutate:  func(c *ClientConfig) { c.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "memory dsn",
			mutate:  func(c *ClientConfig) { c.Storage.DB.DSN = "file::memory:" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "no adapter address",
			mutate:  func(c *ClientConfig) { c.Adapter.HTTPAddress = "" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero interval",
			mutate:  func(c *ClientConfig) { c.Workers.SyncInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name:    "short root key",
			mutate:  func(c *ClientConfig) { c.Sync.RootKey = base64.StdEncoding.EncodeToString([]byte("short")) },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "no key material",
			mutate:  func(c *ClientConfig) { c.Sync.RootKey = "" },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name: "passphrase without salt",
			mutate: func(c *ClientConfig) {
				c.Sync.RootKey = ""
				c.Sync.Passphrase = "hunter2"
			},
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name: "passphrase with salt",
			mutate: func(c *ClientConfig) {
				c.Sync.RootKey = ""
				c.Sync.Passphrase = "hunter2"
				c.Sync.Salt = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
			},
		},
		{
			name:    "no engines",
			mutate:  func(c *ClientConfig) { c.Sync.Engines = nil },
			wantErr: ErrInvalidSyncConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── server ───────────────────────────────────────────────────────────────────

func TestNewServerConfig_AppliesDefaults(t *testing.T) {
	cfg := newServerConfig(&StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://localhost/sync"}},
		App:     App{TokenSignKey: "secret"},
		Server:  Server{MaxPostRecords: 10},
	})

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultServerRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, 10, cfg.Limits.MaxPostRecords)
	assert.Equal(t, models.DefaultMaxPostBytes, cfg.Limits.MaxPostBytes)
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := newServerConfig(&StructuredConfig{App: App{TokenSignKey: "secret"}})
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)

	cfg = newServerConfig(&StructuredConfig{Storage: Storage{DB: DB{DSN: "postgres://x"}}})
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}

func TestGetServerAppConfig(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "")
	resetFlags(t, "-token-sign-key", "secret", "-token-duration", "2h")

	app, err := GetServerAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret", app.TokenSignKey)
	assert.Equal(t, 2*time.Hour, app.TokenDuration)
	assert.Equal(t, DefaultTokenIssuer, app.TokenIssuer)
}

func TestGetServerAppConfig_MissingSignKey(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "")
	resetFlags(t)

	_, err := GetServerAppConfig()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}
