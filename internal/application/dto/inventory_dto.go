package dto

import "github.com/shopspring/decimal"

// CreateItemRequest entrada para registrar un producto. Quantity es opcional (0 por defecto).
type CreateItemRequest struct {
	ID        int64           `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  *int64          `json:"quantity"`
}

// UpdateItemRequest entrada para reemplazar nombre, precio y cantidad de un producto.
type UpdateItemRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// StockMovementRequest entrada para registrar una venta o una compra.
type StockMovementRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// ItemResponse salida de un producto del inventario.
type ItemResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// ItemListResponse listado completo del inventario.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}
