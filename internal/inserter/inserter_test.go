package inserter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyammistari/gysql/internal/schema"
)

const script = `CREATE DATABASE demo;
USE demo;
CREATE TABLE usuarios (id INTEGER PRIMARY KEY, nombre VARCHAR(50), edad INTEGER, activo BOOLEAN);
CREATE TABLE enlaces (id INTEGER PRIMARY KEY, usuario_id INTEGER);
`

func openMemory(t *testing.T) *Sandbox {
	t.Helper()
	sb, err := Open(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sb.Close() })
	return sb
}

func TestParseConn(t *testing.T) {
	tests := []struct {
		conn, driver, dsn string
	}{
		{"", "sqlite3", ":memory:"},
		{"sqlite::memory:", "sqlite3", ":memory:"},
		{"sqlite:./dev.db", "sqlite3", "./dev.db"},
		{"sqlite://dev.db", "sqlite3", "dev.db"},
		{"postgres://u:p@localhost/db", "pgx", "postgres://u:p@localhost/db"},
		{"host=localhost dbname=db", "pgx", "host=localhost dbname=db"},
	}
	for _, tt := range tests {
		driver, dsn := parseConn(tt.conn)
		assert.Equal(t, tt.driver, driver, tt.conn)
		assert.Equal(t, tt.dsn, dsn, tt.conn)
	}
}

func TestBuildPlaceholders(t *testing.T) {
	assert.Equal(t, "(?, ?, ?)", buildPlaceholders("sqlite3", 3))
	assert.Equal(t, "($1, $2)", buildPlaceholders("pgx", 2))
	assert.Equal(t, "INSERT INTO t DEFAULT VALUES", insertQuery("sqlite3", "t", nil))
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", insertQuery("pgx", "t", []string{"a", "b"}))
}

func TestSandbox_Check(t *testing.T) {
	ctx := context.Background()
	sb := openMemory(t)
	assert.Equal(t, "sqlite3", sb.Driver())

	tables := schema.Parse(script)
	require.Len(t, tables, 2)

	results, err := sb.Check(ctx, script, tables)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err, r.Table)
		assert.Equal(t, int64(1), r.Rows, r.Table)
	}

	n, err := sb.Count(ctx, "usuarios")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var nombre string
	var edad int
	require.NoError(t, sb.tx.QueryRowContext(ctx, "SELECT nombre, edad FROM usuarios").Scan(&nombre, &edad))
	assert.Equal(t, "Juan Pérez", nombre)
	assert.Equal(t, 25, edad)
}

func TestSandbox_ApplyFails(t *testing.T) {
	sb := openMemory(t)
	_, err := sb.Check(context.Background(), "CREATE TABLE broken (;", nil)
	assert.ErrorContains(t, err, "apply schema")
}

func TestSandbox_InsertFailureIsPerTable(t *testing.T) {
	ctx := context.Background()
	sb := openMemory(t)
	ddl := "CREATE TABLE a (id INTEGER, nombre TEXT);\n"
	tables := []schema.Table{
		{Name: "a", Columns: []string{"id", "nombre"}},
		{Name: "ghost", Columns: []string{"id", "nombre"}},
		{Name: "vacia", Columns: []string{}},
	}
	results, err := sb.Check(ctx, ddl, tables)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorContains(t, results[1].Err, "insert row")
	assert.ErrorContains(t, results[2].Err, "no columns")
}

func TestSandbox_CloseDiscardsWork(t *testing.T) {
	sb, err := Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, sb.Apply(context.Background(), "CREATE TABLE t (id INTEGER);"))
	assert.NoError(t, sb.Close())
}
