package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/logger"
)

// Storages groups the repositories of the storage server.
type Storages struct {
	BsoRepository BsoRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies the server migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		BsoRepository: NewBsoRepository(db, logger),
		db:            db,
	}, nil
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
