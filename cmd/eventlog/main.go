// cmd/eventlog/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/unclebandit/recommend-gateway/internal/config"
	"github.com/unclebandit/recommend-gateway/internal/logging"
	"github.com/unclebandit/recommend-gateway/internal/model"
	"github.com/unclebandit/recommend-gateway/internal/queue"
)

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
	logCfg.File = cfg.Log.File
	logger, closer, err := logging.New(logCfg)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to initialize logger")
	}
	defer closer.Close()

	if !cfg.AMQP.Enabled() {
		logger.Fatal().Msg("AMQP_URL is not set, nothing to consume")
	}

	consumer, err := queue.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, logEvent(logger), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start consumer")
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("queue", cfg.AMQP.Queue).Msg("Event log running, waiting for events...")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("consumer stopped")
	}
}

// logEvent writes one entry per recommendation outcome. Failed outcomes are
// logged at warn so they stand out in the log file.
func logEvent(logger zerolog.Logger) queue.EventHandler {
	return func(_ context.Context, e model.RecommendationEvent) error {
		entry := logger.Info()
		if e.Outcome != model.OutcomeSuccess {
			entry = logger.Warn()
		}
		entry.
			Str("request_id", e.RequestID).
			Str("customer_id", e.CustomerID).
			Str("cust_type", string(e.CustType)).
			Str("outcome", string(e.Outcome)).
			Str("worker_status_code", e.WorkerStatusCode).
			Time("occurred_at", e.OccurredAt).
			Msg("recommendation")
		return nil
	}
}
