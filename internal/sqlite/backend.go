// Package sqlite persists the inventory mapping in a SQLite database file.
//
// The database holds a single stock table with one row per entry; a position
// column keeps insertion order. Save replaces every row inside one
// transaction, so a failed save leaves the previous snapshot intact.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// DefaultFileName is the database name used when no path is configured.
const DefaultFileName = "inventory.db"

// Backend reads and writes the stock table of one SQLite database file.
type Backend struct {
	path string
}

// NewBackend returns a Backend for the database at path.
// The file is created by the first Save.
func NewBackend(path string) *Backend {
	if path == "" {
		path = DefaultFileName
	}
	return &Backend{path: path}
}

// Location returns the database path.
func (b *Backend) Location() string {
	return b.path
}

// Load returns the stored entries ordered by position.
// A row whose quantity is not an integer stops loading with an error wrapping
// ErrMalformedData; the rows read before it are returned.
func (b *Backend) Load() ([]types.Entry, error) {
	if _, err := os.Stat(b.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrMissingResource, b.path)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrIOFailure, err)
	}

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrMalformedData, b.path, err)
	}
	defer db.Close()

	// A database without a stock table is not an inventory; Load never
	// creates the schema.
	rows, err := db.Query(selectStock)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stock: %v", types.ErrMalformedData, err)
	}
	defer rows.Close()

	entries := []types.Entry{}
	for rows.Next() {
		var e types.Entry
		if err := rows.Scan(&e.Item, &e.Quantity); err != nil {
			return entries, fmt.Errorf("%w: scanning stock row: %v", types.ErrMalformedData, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return entries, fmt.Errorf("%w: reading stock rows: %v", types.ErrIOFailure, err)
	}
	return entries, nil
}

// Save replaces the stock table with entries in one transaction.
func (b *Backend) Save(entries []types.Entry) error {
	db, err := b.open()
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", types.ErrIOFailure, b.path, err)
	}
	defer db.Close()

	if err := writeStock(db, entries); err != nil {
		return fmt.Errorf("%w: %v", types.ErrIOFailure, err)
	}
	return nil
}

// open opens the database for writing and ensures the stock table exists.
func (b *Backend) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createStock); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func writeStock(db *sql.DB, entries []types.Entry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteStock); err != nil {
		return fmt.Errorf("clearing stock: %w", err)
	}

	stmt, err := tx.Prepare(insertStock)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(i, e.Item, e.Quantity); err != nil {
			return fmt.Errorf("inserting %q: %w", e.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}
