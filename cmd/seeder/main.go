// cmd/seeder/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/unclebandit/recommend-gateway/internal/config"
	"github.com/unclebandit/recommend-gateway/internal/db"
	"github.com/unclebandit/recommend-gateway/internal/logging"
)

var seedFiles = []string{
	"seed/cm_cust_product_code.sql",
}

func main() {
	// Used until the configured logger exists.
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logger, closer, err := logging.New(logCfg)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to initialize logger")
	}
	defer closer.Close()

	ctx := context.Background()
	sqlDB, err := db.Open(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer sqlDB.Close()

	if err := seed(ctx, sqlDB, seedFiles, logger); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}

	logger.Info().Msg("Database seeding completed successfully!")
}

// execer is the part of *sql.DB the seeder needs.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// seed executes each file in order and stops at the first failure.
func seed(ctx context.Context, db execer, files []string, logger zerolog.Logger) error {
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file, err)
		}
		logger.Info().Str("file", file).Msg("Seeded")
	}
	return nil
}
