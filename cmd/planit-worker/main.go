// Command planit-worker consumes ledger change events and mirrors them
// into the configured Google Sheet.
package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"planit/internal/amqp"
	"planit/internal/cli"
	"planit/internal/log"
	"planit/internal/sheets/google"
	"planit/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the export worker")
		os.Exit(1)
	}

	result := cli.InitBackend(cfg, logger)
	defer cli.RunCleanup(logger, cfg.ShutdownTimeout, result.Cleanup)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	sheet, err := google.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	w := worker.NewExportWorker(result.Store, sheet, sheet)

	logger.Info("Export worker started",
		log.FieldBackend, cfg.DataBackend,
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeTransactionEvents(gctx, func(event *amqp.TransactionEvent) error {
			return w.HandleEvent(gctx, event)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Export worker stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Export worker stopped gracefully")
}
