package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/logger"
)

// ClientStorages groups the local stores synced by the client. Currently it
// holds only the [PasswordsStore]; further collections are added here.
type ClientStorages struct {
	// Passwords is the SQLite-backed logins store.
	Passwords *PasswordsStore

	db *DB
}

// NewClientStorages initialises the client storage layer. It performs the
// following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Builds the stores on top of the connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Passwords: NewPasswordsStore(db, logger),
		db:        db,
	}, nil
}

// Close releases the SQLite connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
