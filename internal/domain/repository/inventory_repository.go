package repository

import (
	"context"

	"github.com/jhoicas/ventas-pos/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para el inventario (DIP).
// GetByID y GetByName devuelven (nil, nil) si no existe el producto.
type InventoryRepository interface {
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
	GetByName(ctx context.Context, name string) (*entity.InventoryItem, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// Insert devuelve domain.ErrDuplicate si el id ya existe.
	Insert(ctx context.Context, item *entity.InventoryItem) error
	// Update reemplaza nombre, precio y cantidad. Devuelve domain.ErrItemNotFound si no hay fila.
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error
}
