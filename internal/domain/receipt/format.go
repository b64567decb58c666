package receipt

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/ventas-pos/internal/domain/entity"
)

// Presupuesto visual del nombre del producto en la línea del recibo.
const (
	NameBudget    = 28
	nameKeep      = 25
	nameEllipsis  = "..."
	lineFormat    = "%-4d %-32s %4d %7s %9s"
	columnsFormat = "%-4s %-32s %4s %7s %9s"
)

// FormatName devuelve el nombre tal cual si tiene hasta 28 caracteres; si no, los
// primeros 25 seguidos de "...". Se cuenta en caracteres (runas, forma NFC), no en bytes.
func FormatName(name string) string {
	name = norm.NFC.String(name)
	if utf8.RuneCountInString(name) <= NameBudget {
		return name
	}
	runes := []rune(name)
	return string(runes[:nameKeep]) + nameEllipsis
}

// FormatMoney formatea un monto con símbolo y dos decimales: "$1234.50".
func FormatMoney(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

// FormatLine arma la línea de ancho fijo: id(4) nombre(32) cantidad(4) precio(7) subtotal(9).
func FormatLine(l entity.SaleLine) string {
	return fmt.Sprintf(lineFormat,
		l.ID,
		FormatName(l.Name),
		l.Quantity,
		FormatMoney(l.UnitPrice),
		FormatMoney(l.Subtotal),
	)
}

// ColumnHeader es la fila de títulos de columna, alineada con FormatLine.
func ColumnHeader() string {
	return fmt.Sprintf(columnsFormat, "ID", "Producto", "Cant", "Precio", "Subtotal")
}

// FormatTotal es el texto del pie con el gran total.
func FormatTotal(total decimal.Decimal) string {
	return "Total: " + FormatMoney(total)
}
