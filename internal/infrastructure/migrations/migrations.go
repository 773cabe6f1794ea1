// Package migrations holds the run journal schema and applies it with
// golang-migrate through a driver that works on any *sql.DB opened with
// ncruces/go-sqlite3. golang-migrate's own sqlite3 driver links
// mattn/go-sqlite3, which registers the same "sqlite3" driver name.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var schemaFS embed.FS

// FS returns the embedded migration files.
func FS() fs.FS {
	return schemaFS
}

// Up applies every pending migration. An up-to-date schema is not an error.
func Up(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying journal migrations: %w", err)
	}
	return nil
}

// SchemaVersion reports the applied schema version and whether the last
// migration was interrupted.
func SchemaVersion(db *sql.DB) (uint, bool, error) {
	m, err := newMigrate(db)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(schemaFS, ".")
	if err != nil {
		return nil, err
	}
	drv, err := newDriver(db)
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", src, "sqlite3", drv)
}
