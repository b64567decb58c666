package entity

import "github.com/shopspring/decimal"

// SaleLine es una línea de venta tal como la envía la caja.
// Subtotal lo calcula quien construye la línea; el recibo lo imprime tal cual.
type SaleLine struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
	Subtotal  decimal.Decimal
}

// ExpectedSubtotal devuelve UnitPrice * Quantity.
func (l SaleLine) ExpectedSubtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// SubtotalConsistent indica si Subtotal coincide con UnitPrice * Quantity.
func (l SaleLine) SubtotalConsistent() bool {
	return l.Subtotal.Equal(l.ExpectedSubtotal())
}
