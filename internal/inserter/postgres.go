package inserter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// openPostgres opens dsn through pgx's database/sql adapter. PostgreSQL DDL
// is transactional, so the sandbox leaves the server untouched.
func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	db := stdlib.OpenDB(*cfg)
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf(
			"ping postgres: %w\n"+
				"Check that the server is running on %s:%d",
			err, cfg.Host, cfg.Port,
		)
	}
	return db, nil
}
