package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// Las columnas de la base original son TEXT; el CAST tolera archivos heredados.
const selectItem = `SELECT id, nombre_producto, precio_producto, CAST(cantidad_producto AS INTEGER) FROM inventario`

// InventoryRepo inventario sobre la tabla "inventario" (con *sql.DB o *sql.Tx).
type InventoryRepo struct {
	q querier
}

// List devuelve todo el inventario ordenado por id.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.QueryContext(ctx, selectItem+` ORDER BY id`)
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
	return r.getOne(ctx, selectItem+` WHERE id = ?`, id)
}

// GetByIDForUpdate equivale a GetByID: con una sola conexión la transacción ya es exclusiva.
func (r *InventoryRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

// GetByName obtiene un producto por nombre, sin distinguir mayúsculas.
func (r *InventoryRepo) GetByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, selectItem+` WHERE lower(nombre_producto) = lower(?) ORDER BY id LIMIT 1`, name)
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&it.ID, &it.Name, &it.UnitPrice, &it.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Insert registra un producto nuevo.
func (r *InventoryRepo) Insert(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO inventario (id, nombre_producto, precio_producto, cantidad_producto) VALUES (?, ?, ?, ?)`,
		item.ID, item.Name, item.UnitPrice.StringFixed(2), item.Quantity,
	)
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
	res, err := r.q.ExecContext(ctx,
		`UPDATE inventario SET nombre_producto = ?, precio_producto = ?, cantidad_producto = ? WHERE id = ?`,
		item.Name, item.UnitPrice.StringFixed(2), item.Quantity, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return requireRow(res)
}

// UpdateQuantity fija las existencias del producto.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE inventario SET cantidad_producto = ? WHERE id = ?`, quantity, id)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update quantity: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
