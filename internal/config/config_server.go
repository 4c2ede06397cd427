package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync15/models"
)

// Server defaults applied when no source sets a value.
const (
	DefaultServerAddress        = "localhost:8080"
	DefaultServerRequestTimeout = 30 * time.Second
	DefaultTokenDuration        = 24 * time.Hour
	DefaultTokenIssuer          = "go-sync15"
)

// ServerHTTP holds the listen settings of the storage server.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ServerApp holds token settings and the version of the storage server.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
}

// ServerConfig is the storage server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	Server  ServerHTTP
	Storage Storage
	App     ServerApp
	// Limits is served at info/configuration and enforced on uploads.
	Limits models.InfoConfiguration
	// LogLevel is applied with logger.SetLevel.
	LogLevel string
}

// GetServerConfig builds and validates the storage server's config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Storage: cfg.Storage,
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			Version:       cfg.App.Version,
		},
		Limits: models.InfoConfiguration{
			MaxPostRecords:        cfg.Server.MaxPostRecords,
			MaxPostBytes:          cfg.Server.MaxPostBytes,
			MaxTotalRecords:       cfg.Server.MaxTotalRecords,
			MaxTotalBytes:         cfg.Server.MaxTotalBytes,
			MaxRecordPayloadBytes: cfg.Server.MaxRecordPayloadBytes,
		}.WithDefaults(),
		LogLevel: cfg.LogLevel,
	}

	if serverCfg.Server.HTTPAddress == "" {
		serverCfg.Server.HTTPAddress = DefaultServerAddress
	}
	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = DefaultServerRequestTimeout
	}
	if serverCfg.App.TokenDuration == 0 {
		serverCfg.App.TokenDuration = DefaultTokenDuration
	}
	if serverCfg.App.TokenIssuer == "" {
		serverCfg.App.TokenIssuer = DefaultTokenIssuer
	}

	return serverCfg
}

// GetServerAppConfig returns only the token settings of the storage server.
// Tools that mint tokens need neither a database nor a listen address.
func GetServerAppConfig() (*ServerApp, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	app := newServerConfig(cfg).App
	if app.TokenSignKey == "" {
		return nil, ErrInvalidAppConfigs
	}
	return &app, nil
}
