package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DefaultDriver is the database/sql driver registered by this package.
const DefaultDriver = "mysql"

// OpenDBWithDSN creates and configures a read-only connection pool for the
// given driver and DSN. sql.Open does not dial, so a bad host only shows up
// on the first query or on Verify.
func OpenDBWithDSN(driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = DefaultDriver
	}
	if dsn == "" {
		return nil, fmt.Errorf("database: empty DSN for driver %q", driver)
	}

	// 1. Open a new connection pool.
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}

	// 2. Configure the pool. The dashboard issues one query per cache miss,
	// so a handful of connections is plenty.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connection pool configured", "driver", driver)
	return db, nil
}

// Verify pings the database within the given timeout.
func Verify(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}
