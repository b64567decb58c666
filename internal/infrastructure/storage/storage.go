// Package storage abre los repositorios del driver configurado (PostgreSQL o SQLite).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos/internal/application/inventory"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/sqlite"
	"github.com/jhoicas/ventas-pos/pkg/config"
)

// Storage agrupa los repositorios de un mismo driver.
type Storage struct {
	Credentials repository.CredentialRepository
	Inventory   repository.InventoryRepository
	Sequences   repository.ReceiptSequenceRepository
	TxRunner    inventory.TxRunner

	close func()
}

// Close libera la conexión o el pool.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta al driver de cfg y aplica el esquema (idempotente en ambos drivers).
func Open(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Credentials: store.Credentials(),
			Inventory:   store.Inventory(),
			Sequences:   store.ReceiptSequences(),
			TxRunner:    store.TxRunner(),
			close:       func() { _ = store.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Storage{
			Credentials: postgres.NewCredentialRepository(pool),
			Inventory:   postgres.NewInventoryRepository(pool),
			Sequences:   postgres.NewReceiptSequenceRepository(pool),
			TxRunner:    postgres.NewTxRunner(pool),
			close:       pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
	}
}
