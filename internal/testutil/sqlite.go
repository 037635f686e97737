// Package testutil opens throwaway SQLite databases carrying the service schema.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"client-service/migrations"

	_ "modernc.org/sqlite"
)

// NewDB returns a file-backed SQLite database in t.TempDir with foreign keys enforced
// and all tables created. It is closed when the test completes.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "client-service.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	// One connection keeps every statement of a test on the same SQLite handle.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := migrations.AutoMigrate(context.Background(), 0, migrations.DialectSQLite, db); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return db
}
