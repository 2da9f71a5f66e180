package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"climb/internal/amqp"
	"climb/internal/backend"
	"climb/internal/config"
	applog "climb/internal/log"
	"climb/internal/sheets"
	gsheet "climb/internal/sheets/google"
	sheetsmem "climb/internal/sheets/memory"
	"climb/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting climb-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}

	// The worker reads the same store the API writes: messages carry
	// only record keys.
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	var report sheets.ReportWriter
	if cfg.GoogleSpreadsheetID != "" {
		if err := cfg.ValidateSheets(); err != nil {
			logger.Error("Sheets configuration validation failed", "error", err)
			os.Exit(1)
		}
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		report = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		report = sheetsmem.New()
		logger.Warn("No GOOGLE_SPREADSHEET_ID provided, mirroring to in-memory sink only")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(result.Store, report)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumeLoop(ctx, amqpClient, cfg, syncWorker, logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

// consumeLoop consumes record events until the context is cancelled,
// reconnecting on connection loss.
func consumeLoop(ctx context.Context, client *amqp.Client, cfg *config.Config, syncWorker *worker.SyncWorker, logger *applog.Logger) error {
	handler := func(msg *amqp.RecordEventMessage) error {
		return syncWorker.HandleRecordEvent(ctx, msg)
	}

	for {
		err := client.ConsumeRecordEvents(ctx, cfg.ConsumerPrefetch, handler)
		if err == nil || errors.Is(err, context.Canceled) {
			return ctx.Err()
		}

		logger.Error("Message consumption failed", "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		reconnected, rerr := amqp.Reconnect(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, 10, cfg.ReconnectBackoff)
		if rerr != nil {
			return rerr
		}
		_ = client.Close()
		client = reconnected
		logger.Info("Reconnected to AMQP broker")
	}
}
