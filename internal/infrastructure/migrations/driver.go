package migrations

import (
	"database/sql"
	"errors"
	"io"
	"sync"

	"github.com/golang-migrate/migrate/v4/database"
)

// versionTable holds the journal's single schema version row.
const versionTable = "journal_schema"

// journalDriver is the golang-migrate database.Driver for the run journal.
// It only ever sees the journal's own connection, so locking is in-process
// and every migration runs inside a transaction.
type journalDriver struct {
	db *sql.DB

	mu     sync.Mutex
	locked bool
}

var _ database.Driver = (*journalDriver)(nil)

func newDriver(db *sql.DB) (*journalDriver, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + versionTable + ` (
		id      INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL,
		dirty   INTEGER NOT NULL
	)`); err != nil {
		return nil, &database.Error{OrigErr: err, Err: "creating " + versionTable}
	}
	return &journalDriver{db: db}, nil
}

// Open is never used: the journal hands over its open connection.
func (d *journalDriver) Open(string) (database.Driver, error) {
	return nil, errors.New("journal driver has no URL form")
}

// Close is a no-op. The connection belongs to the journal.
func (d *journalDriver) Close() error { return nil }

func (d *journalDriver) Lock() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locked {
		return database.ErrLocked
	}
	d.locked = true
	return nil
}

func (d *journalDriver) Unlock() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.locked {
		return database.ErrNotLocked
	}
	d.locked = false
	return nil
}

// Run applies one migration file in its own transaction.
func (d *journalDriver) Run(migration io.Reader) error {
	body, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	return d.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(string(body)); err != nil {
			return &database.Error{OrigErr: err, Query: body}
		}
		return nil
	})
}

// SetVersion records version. A clean NilVersion clears the row, which is
// how golang-migrate marks a fully migrated-down schema.
func (d *journalDriver) SetVersion(version int, dirty bool) error {
	return d.inTx(func(tx *sql.Tx) error {
		if version == database.NilVersion && !dirty {
			_, err := tx.Exec(`DELETE FROM ` + versionTable)
			return err
		}
		_, err := tx.Exec(`INSERT INTO `+versionTable+` (id, version, dirty) VALUES (1, ?, ?)
			ON CONFLICT (id) DO UPDATE SET version = excluded.version, dirty = excluded.dirty`, version, dirty)
		return err
	})
}

// Version returns the recorded version, or NilVersion before the first
// migration.
func (d *journalDriver) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	err := d.db.QueryRow(`SELECT version, dirty FROM ` + versionTable + ` WHERE id = 1`).Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return database.NilVersion, false, nil
	case err != nil:
		return 0, false, &database.Error{OrigErr: err, Err: "reading schema version"}
	}
	return version, dirty, nil
}

// Drop removes the journal tables and the version row.
func (d *journalDriver) Drop() error {
	return d.inTx(func(tx *sql.Tx) error {
		for _, table := range []string{"transitions", "runs"} {
			if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
				return err
			}
		}
		_, err := tx.Exec(`DELETE FROM ` + versionTable)
		return err
	})
}

func (d *journalDriver) inTx(fn func(*sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &database.Error{OrigErr: err, Err: "begin"}
	}
	if err := fn(tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}
