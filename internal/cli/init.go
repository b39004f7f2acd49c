// Package cli provides common initialization shared by cmd/planit and
// cmd/planit-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"planit/internal/backend"
	"planit/internal/config"
	"planit/internal/log"
)

// SetupLogger initializes structured logging and installs it as the slog
// default.
func SetupLogger(component string) *log.Logger {
	logger := log.New(log.Config{Component: component})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend builds the persistence adapter named by the config, or
// exits the process on failure.
func InitBackend(cfg *config.Config, logger *log.Logger) *backend.Result {
	result, err := backend.New(cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize persistence backend",
			log.FieldError, err,
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return result
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// RunCleanup invokes cleanup within the shutdown timeout, logging but not
// propagating failures.
func RunCleanup(logger *log.Logger, timeout time.Duration, cleanup func() error) {
	if cleanup == nil {
		return
	}
	done := make(chan error, 1)
	go func() { done <- cleanup() }()

	select {
	case err := <-done:
		if err != nil {
			logger.Warn("Cleanup failed", log.FieldError, err)
		}
	case <-time.After(timeout):
		logger.Warn("Cleanup timed out", "timeout", timeout)
	}
}
