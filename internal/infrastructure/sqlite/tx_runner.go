package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/ventas-pos/internal/application/inventory"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// Run inicia una transacción, ejecuta fn con el repositorio atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.InventoryRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&InventoryRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
