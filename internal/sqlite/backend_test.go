// Tests for the SQLite inventory backend.
package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func TestBackend_LoadMissingFile(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "inventory.db"))

	entries, err := b.Load()
	if !errors.Is(err, types.ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource, got %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}

	// Load must not create the file.
	if _, err := os.Stat(b.Location()); !os.IsNotExist(err) {
		t.Errorf("expected %s to stay absent, stat err = %v", b.Location(), err)
	}
}

func TestBackend_SaveThenLoad(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "inventory.db"))

	want := []types.Entry{
		{Item: "pear", Quantity: 3},
		{Item: "apple", Quantity: 7},
		{Item: "banana", Quantity: -2},
	}
	if err := b.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("round trip mismatch: want %v, got %v", want, got)
	}
}

func TestBackend_SaveReplacesSnapshot(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "inventory.db"))

	if err := b.Save([]types.Entry{{Item: "old", Quantity: 1}, {Item: "apple", Quantity: 2}}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := b.Save([]types.Entry{{Item: "apple", Quantity: 5}}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []types.Entry{{Item: "apple", Quantity: 5}}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestBackend_SaveEmpty(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "inventory.db"))

	if err := b.Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil entries, got %#v", got)
	}
}

func TestBackend_FailedSaveKeepsPreviousSnapshot(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "inventory.db"))

	prev := []types.Entry{{Item: "apple", Quantity: 7}}
	if err := b.Save(prev); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The empty item violates the CHECK constraint and aborts the transaction.
	err := b.Save([]types.Entry{{Item: "pear", Quantity: 1}, {Item: "", Quantity: 2}})
	if !errors.Is(err, types.ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(prev, got) {
		t.Errorf("want %v, got %v", prev, got)
	}
}

func TestBackend_LoadNonIntegerQuantity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	b := NewBackend(path)
	if err := b.Save([]types.Entry{{Item: "apple", Quantity: 7}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO stock (position, item, quantity) VALUES (1, 'pear', 'plenty')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	entries, err := b.Load()
	if !errors.Is(err, types.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
	want := []types.Entry{{Item: "apple", Quantity: 7}}
	if !reflect.DeepEqual(want, entries) {
		t.Errorf("expected entries before the bad row %v, got %v", want, entries)
	}
}

func TestBackend_LoadNotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	junk := []byte(strings.Repeat(`{"apple": 7}`, 100))
	if err := os.WriteFile(path, junk, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := NewBackend(path).Load()
	if !errors.Is(err, types.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}
}

func TestBackend_SaveIntoMissingDirectory(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "no", "such", "inventory.db"))

	err := b.Save([]types.Entry{{Item: "apple", Quantity: 1}})
	if !errors.Is(err, types.ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got %v", err)
	}
}

func TestBackend_LoadWithoutStockTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE notes (body TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	db.Close()

	entries, err := NewBackend(path).Load()
	if !errors.Is(err, types.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}

	db, err = sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE name = 'stock'`).Scan(&n); err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if n != 0 {
		t.Errorf("expected Load to leave the schema alone, found stock table")
	}
}
