// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/unclebandit/recommend-gateway/internal/config"
	"github.com/unclebandit/recommend-gateway/internal/controller"
	"github.com/unclebandit/recommend-gateway/internal/db"
	"github.com/unclebandit/recommend-gateway/internal/handler"
	"github.com/unclebandit/recommend-gateway/internal/logging"
	"github.com/unclebandit/recommend-gateway/internal/queue"
	"github.com/unclebandit/recommend-gateway/internal/repository"
	"github.com/unclebandit/recommend-gateway/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Used until the configured logger exists.
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load .env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Caller = cfg.Log.Caller
	logCfg.File = cfg.Log.File
	logger, logFile, err := logging.New(logCfg)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to initialize logger")
	}
	defer logFile.Close()

	if envErr != nil {
		logger.Debug().Msg("No .env file found, relying on OS environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		logFile.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	// Init DB
	sqlDB, err := db.Open(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.AMQP.Enabled() {
		p, err := queue.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			return err
		}
		events = p
		logger.Info().Str("queue", cfg.AMQP.Queue).Msg("Publishing recommendation events")
	}
	defer events.Close()

	customerRepo := &repository.CustomerRepository{DB: sqlDB}

	recommendService := &service.RecommendService{
		Lookup: &service.CustomerLookup{Repo: customerRepo, Logger: logger},
		Worker: service.NewWorkerClient(cfg.Worker.URL, &http.Client{}),
		Events: events,
		Logger: logger,
	}

	recommendController := &controller.RecommendController{
		RecommendService: recommendService,
		Logger:           logger,
	}

	healthHandler := handler.NewHealthHandler(customerRepo, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler.NewRouter(recommendController, healthHandler, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("worker_url", cfg.Worker.URL).
			Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
