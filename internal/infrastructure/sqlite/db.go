// Package sqlite stores the release run journal in a SQLite database
// opened with the pure-Go ncruces driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/simplybusiness/kiln-release/internal/infrastructure/migrations"
	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/runs/domain"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// DB owns the journal connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the journal at path, configures pragmas and
// applies migrations. The parent directory is created if needed.
//
// Example:
//
//	db, err := sqlite.Open(".git/kiln-release/journal.db")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func Open(path string) (*DB, error) {
	log.Debug(log.CatDB, "Opening journal", "path", path)

	dsn := "file::memory:"
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			log.ErrorErr(log.CatDB, "Failed to create journal directory", err, "path", dir)
			return nil, fmt.Errorf("creating journal directory %s: %w", dir, err)
		}
		dsn = "file:" + path
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	// A single writer; also keeps :memory: on one connection.
	conn.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			_ = conn.Close()
			log.ErrorErr(log.CatDB, "Failed to configure journal", err, "pragma", p)
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := migrations.Up(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Failed to migrate journal", err)
		return nil, err
	}

	log.Debug(log.CatDB, "Journal ready", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// Close releases the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	log.Debug(log.CatDB, "Closing journal", "path", db.path)
	return db.conn.Close()
}

// Runs returns the run repository backed by this connection.
func (db *DB) Runs() domain.RunRepository {
	return &runRepository{db: db.conn}
}

// Connection exposes the underlying *sql.DB to tests.
func (db *DB) Connection() *sql.DB {
	return db.conn
}
