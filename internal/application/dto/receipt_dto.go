package dto

import "github.com/shopspring/decimal"

// SaleLineRequest línea de venta enviada por la caja.
type SaleLineRequest struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// IssueReceiptRequest entrada para emitir un recibo. AdminPassword solo se usa
// en el cierre del día cuando la sesión no es de administrador.
type IssueReceiptRequest struct {
	Lines         []SaleLineRequest `json:"lines"`
	Total         decimal.Decimal   `json:"total"`
	IsDayClosure  bool              `json:"is_day_closure"`
	AdminPassword *string           `json:"admin_password,omitempty"`
}

// IssueReceiptResponse ruta absoluta del recibo escrito.
type IssueReceiptResponse struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
	Sequence int    `json:"sequence"`
}
