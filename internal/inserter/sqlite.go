package inserter

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// openSQLite opens path with the sqlite3 driver. ":memory:" gives a private
// database, so the pool is pinned to a single connection.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(driverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w\nCheck that the path is writable: %s", err, path)
	}
	// SQLite ignores FK constraints by default.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}
