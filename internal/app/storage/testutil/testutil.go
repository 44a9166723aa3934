// Package testutil contains utilities for writing tests with the storage package.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ErikKalkoken/keybuddy/internal/app/storage"
)

// NewDBInMemory creates and returns a database in memory for tests.
// The database is closed automatically once the test has concluded.
func NewDBInMemory(t testing.TB) (*sql.DB, *storage.Storage) {
	// in-memory DB for faster running tests
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// each connection would get its own in-memory database
	db.SetMaxOpenConns(1)
	if err := storage.ApplyMigrations(db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db, storage.New(db)
}

// NewDBOnDisk creates and returns a new temporary database on disk for tests.
// The database is automatically removed once the test has concluded.
func NewDBOnDisk(t testing.TB) (*sql.DB, *storage.Storage) {
	// real DB for more thorough tests
	p := filepath.Join(t.TempDir(), "keybuddy_test.sqlite")
	db, err := storage.InitDB("file:" + p)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db, storage.New(db)
}

// TruncateTables will purge data from all data tables. This is meant for tests.
func TruncateTables(db *sql.DB) {
	if _, err := db.Exec("DELETE FROM settings;"); err != nil {
		panic(err)
	}
}
