package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const selectItem = `SELECT id, nombre_producto, precio_producto, cantidad_producto FROM inventario`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// List devuelve todo el inventario ordenado por id.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, selectItem+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por id.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.getOne(ctx, selectItem+` WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.getOne(ctx, selectItem+` WHERE id = $1 FOR UPDATE`, id)
}

// GetByName obtiene un producto por nombre, sin distinguir mayúsculas.
func (r *InventoryRepo) GetByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, selectItem+` WHERE lower(nombre_producto) = lower($1) ORDER BY id LIMIT 1`, name)
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, arg).Scan(&it.ID, &it.Name, &it.UnitPrice, &it.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Insert registra un producto nuevo.
func (r *InventoryRepo) Insert(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventario (id, nombre_producto, precio_producto, cantidad_producto)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, item.ID, item.Name, item.UnitPrice, item.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update reemplaza nombre, precio y cantidad.
func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventario SET nombre_producto = $2, precio_producto = $3, cantidad_producto = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, item.ID, item.Name, item.UnitPrice, item.Quantity)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// UpdateQuantity fija las existencias del producto.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventario SET cantidad_producto = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
