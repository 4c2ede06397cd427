package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config
// file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress           string   `json:"http_address"`
		RequestTimeout        Duration `json:"request_timeout"`
		MaxPostRecords        int      `json:"max_post_records"`
		MaxPostBytes          int      `json:"max_post_bytes"`
		MaxTotalRecords       int      `json:"max_total_records"`
		MaxTotalBytes         int      `json:"max_total_bytes"`
		MaxRecordPayloadBytes int      `json:"max_record_payload_bytes"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AuthToken      string   `json:"auth_token"`
	} `json:"adapter,omitempty"`

	Sync struct {
		RootKey        string   `json:"root_key"`
		Passphrase     string   `json:"passphrase"`
		Salt           string   `json:"salt"`
		Engines        []string `json:"engines"`
		FullyAtomic    bool     `json:"fully_atomic"`
		MaxPostRecords int      `json:"max_post_records"`
		MaxPostBytes   int      `json:"max_post_bytes"`
	} `json:"sync,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:           jsonCfg.Server.HTTPAddress,
			RequestTimeout:        time.Duration(jsonCfg.Server.RequestTimeout),
			MaxPostRecords:        jsonCfg.Server.MaxPostRecords,
			MaxPostBytes:          jsonCfg.Server.MaxPostBytes,
			MaxTotalRecords:       jsonCfg.Server.MaxTotalRecords,
			MaxTotalBytes:         jsonCfg.Server.MaxTotalBytes,
			MaxRecordPayloadBytes: jsonCfg.Server.MaxRecordPayloadBytes,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			AuthToken:      jsonCfg.Adapter.AuthToken,
		},
		Sync: Sync{
			RootKey:        jsonCfg.Sync.RootKey,
			Passphrase:     jsonCfg.Sync.Passphrase,
			Salt:           jsonCfg.Sync.Salt,
			Engines:        jsonCfg.Sync.Engines,
			FullyAtomic:    jsonCfg.Sync.FullyAtomic,
			MaxPostRecords: jsonCfg.Sync.MaxPostRecords,
			MaxPostBytes:   jsonCfg.Sync.MaxPostBytes,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		LogLevel: jsonCfg.LogLevel,
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
