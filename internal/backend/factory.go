// Package backend selects and builds the persistence adapter from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"planit/internal/config"
	"planit/internal/storage"
)

// Type represents the kind of persistence backend
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc represents a cleanup function for backend resources
type CleanupFunc func() error

// Result contains the storage adapter and optional cleanup function
type Result struct {
	Store   storage.Store
	Cleanup CleanupFunc
}

// New builds the persistence adapter named by the configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.DataBackend)
	switch t {
	case FileBackend:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		logger.Info("Initialized file backend", "data_dir", cfg.DataDir)
		return &Result{Store: store}, nil

	case SQLiteBackend:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", t)
	}
}
