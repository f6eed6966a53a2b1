// Package inserter applies a schema script to a throwaway transaction and
// inserts one synthesized row per table, so DDL and sample values can be
// checked against a real engine before any code is generated.
package inserter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/satyammistari/gysql/internal/sample"
	"github.com/satyammistari/gysql/internal/schema"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "pgx"
)

// Sandbox wraps one open transaction. Nothing it does is ever committed.
type Sandbox struct {
	db     *sql.DB
	tx     *sql.Tx
	driver string
}

// Result is the outcome of InsertSample for one table.
type Result struct {
	Table string
	Rows  int64
	Err   error
}

// Open starts a sandbox on conn.
// Formats: "" or "sqlite::memory:" (default), "sqlite:path", "sqlite://path",
// "postgres://..." or "postgresql://...".
func Open(ctx context.Context, conn string) (*Sandbox, error) {
	driver, dsn := parseConn(conn)
	var (
		db  *sql.DB
		err error
	)
	if driver == driverSQLite {
		db, err = openSQLite(ctx, dsn)
	} else {
		db, err = openPostgres(ctx, dsn)
	}
	if err != nil {
		return nil, err
	}
	return begin(ctx, db, driver)
}

// begin takes ownership of db and opens the sandbox transaction on it.
func begin(ctx context.Context, db *sql.DB, driver string) (*Sandbox, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Sandbox{db: db, tx: tx, driver: driver}, nil
}

func parseConn(conn string) (driver, dsn string) {
	switch {
	case conn == "":
		return driverSQLite, ":memory:"
	case strings.HasPrefix(conn, "sqlite://"):
		return driverSQLite, strings.TrimPrefix(conn, "sqlite://")
	case strings.HasPrefix(conn, "sqlite:"):
		return driverSQLite, strings.TrimPrefix(conn, "sqlite:")
	}
	return driverPostgres, conn
}

// Driver returns the database/sql driver name in use.
func (s *Sandbox) Driver() string { return s.driver }

// Apply executes the table half of script. CREATE DATABASE and USE lines are
// dropped since neither engine accepts them inside a transaction.
func (s *Sandbox) Apply(ctx context.Context, script string) error {
	_, rest := schema.SplitLifecycle(script)
	if strings.TrimSpace(rest) == "" {
		return nil
	}
	if _, err := s.tx.ExecContext(ctx, rest); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// InsertSample inserts one row into t built from sample values for its
// insert columns, the same values the generated test driver uses.
func (s *Sandbox) InsertSample(ctx context.Context, t schema.Table) (int64, error) {
	if len(t.Columns) == 0 {
		return 0, fmt.Errorf("%s: no columns", t.Name)
	}
	cols := t.InsertColumns()
	query := insertQuery(s.driver, t.Name, cols)

	// A failed statement aborts a PostgreSQL transaction; the savepoint keeps
	// later tables usable.
	if _, err := s.tx.ExecContext(ctx, "SAVEPOINT sample_row"); err != nil {
		return 0, fmt.Errorf("savepoint: %w", err)
	}
	res, err := s.tx.ExecContext(ctx, query, sample.Values(cols)...)
	if err != nil {
		_, _ = s.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT sample_row")
		return 0, fmt.Errorf("insert row: %w\nSQL: %s", err, query)
	}
	if _, err := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT sample_row"); err != nil {
		return 0, fmt.Errorf("release savepoint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Check applies script and then inserts a sample row into each table. Table
// failures are reported per Result; only a failing Apply returns an error.
func (s *Sandbox) Check(ctx context.Context, script string, tables []schema.Table) ([]Result, error) {
	if err := s.Apply(ctx, script); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(tables))
	for _, t := range tables {
		n, err := s.InsertSample(ctx, t)
		results = append(results, Result{Table: t.Name, Rows: n, Err: err})
	}
	return results, nil
}

// Count returns the number of rows in table as seen by the sandbox.
func (s *Sandbox) Count(ctx context.Context, table string) (int, error) {
	var n int
	err := s.tx.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	return n, err
}

// Close rolls back everything and closes the connection.
func (s *Sandbox) Close() error {
	rbErr := s.tx.Rollback()
	if err := s.db.Close(); err != nil {
		return err
	}
	if rbErr != nil && rbErr != sql.ErrTxDone {
		return rbErr
	}
	return nil
}

func insertQuery(driver, table string, columns []string) string {
	if len(columns) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", table)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), buildPlaceholders(driver, len(columns)))
}

// buildPlaceholders returns "(?, ?)" for SQLite and "($1, $2)" for PostgreSQL.
func buildPlaceholders(driver string, n int) string {
	ph := make([]string, n)
	for i := range ph {
		if driver == driverSQLite {
			ph[i] = "?"
		} else {
			ph[i] = fmt.Sprintf("$%d", i+1)
		}
	}
	return "(" + strings.Join(ph, ", ") + ")"
}
