// Package repository selects and opens the configured state store
package repository

import (
	"context"
	"fmt"

	"github.com/thisisprabha/networth/internal/adapter/repository/filestore"
	"github.com/thisisprabha/networth/internal/adapter/repository/memory"
	"github.com/thisisprabha/networth/internal/adapter/repository/postgres"
	"github.com/thisisprabha/networth/internal/adapter/repository/sqlite"
	"github.com/thisisprabha/networth/internal/config"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
)

// Store is a StateStore that holds resources
type Store interface {
	domain.StateStore
	Close() error
}

// Open returns the store named by cfg.DataBackend
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	switch cfg.DataBackend {
	case config.BackendMemory:
		logger.InfoContext(ctx, "initialized memory backend", log.FieldBackend, cfg.DataBackend)
		return memory.NewStore(), nil

	case config.BackendFile:
		s, err := filestore.NewStore(cfg.DataFile, cfg.EncryptionKey, filestore.DefaultKDF)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file backend: %w", err)
		}
		logger.InfoContext(ctx, "initialized encrypted file backend",
			log.FieldBackend, cfg.DataBackend,
			log.FieldPath, cfg.DataFile,
		)
		return s, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite backend: %w", err)
		}
		logger.InfoContext(ctx, "initialized sqlite backend",
			log.FieldBackend, cfg.DataBackend,
			log.FieldPath, cfg.SQLiteDBPath,
		)
		return s, nil

	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.DBConnStr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres backend: %w", err)
		}
		logger.InfoContext(ctx, "initialized postgres backend", log.FieldBackend, cfg.DataBackend)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
