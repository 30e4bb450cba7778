// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

// Open connects to the record store and verifies it with a ping.
func Open(ctx context.Context, dsn string, logger zerolog.Logger) (*sql.DB, error) {
	return OpenWithDriver(ctx, DriverName, dsn, logger)
}

// OpenWithDriver is Open for an explicit driver name.
func OpenWithDriver(ctx context.Context, driver, dsn string, logger zerolog.Logger) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info().Str("driver", driver).Msg("connected to database")
	return conn, nil
}
