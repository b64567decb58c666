package entity

import "github.com/shopspring/decimal"

// InventoryItem representa un producto de la tabla de inventario.
// El id lo asigna quien registra el producto (no es autoincremental).
type InventoryItem struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal // precio de venta unitario
	Quantity  int64           // existencias disponibles
}
