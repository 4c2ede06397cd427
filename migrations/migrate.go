// Package migrations embeds the schema of both databases and applies it
// with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dialect selects the embedded migration set and the goose dialect.
type Dialect string

const (
	// Postgres is the storage server schema.
	Postgres Dialect = "postgres"
	// SQLite is the client passwords store schema.
	SQLite Dialect = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

func (d Dialect) dir() (string, error) {
	switch d {
	case Postgres:
		return "postgres", nil
	case SQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("migration error: unknown dialect %q", d)
	}
}

func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errNilDB
	}

	dir, err := dialect.dir()
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)

	if err = goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err = goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
