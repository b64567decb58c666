package inventory

import (
	"context"

	"github.com/jhoicas/ventas-pos/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.InventoryRepository) error) error
}
