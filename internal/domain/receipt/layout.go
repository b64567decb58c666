package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos/internal/domain/entity"
)

// Layout de cada página (unidades en mm, y medida desde el borde inferior):
//
//	StartY ─┬─ Título                     (TitleAdvance)
//	        ├─ Fecha: 2006-01-02 15:04    (DateAdvance)
//	        ├─ ID  Producto ... Subtotal  (ColumnsAdvance)
//	        ├─ línea 1                    (LineAdvance)
//	        ├─ ...
//	        └─ Total: $...                (FooterAdvance, solo en la última página)
//	MinY  ─── piso del contenido
//
// La paginación es voraz y de una sola pasada: nunca se reacomoda contenido ya ubicado.

// Geometry define el presupuesto vertical de una página.
type Geometry struct {
	StartY         float64
	MinY           float64
	TitleAdvance   float64
	DateAdvance    float64
	ColumnsAdvance float64
	LineAdvance    float64
	FooterAdvance  float64
}

// DefaultGeometry es la página de 210×180 del recibo impreso.
func DefaultGeometry() Geometry {
	return Geometry{
		StartY:         170,
		MinY:           18,
		TitleAdvance:   8,
		DateAdvance:    10,
		ColumnsAdvance: 6,
		LineAdvance:    5,
		FooterAdvance:  10,
	}
}

// HeaderAdvance es el espacio vertical que consume el encabezado.
func (g Geometry) HeaderAdvance() float64 {
	return g.TitleAdvance + g.DateAdvance + g.ColumnsAdvance
}

// Usable es la altura máxima que puede ocupar el contenido de una página.
func (g Geometry) Usable() float64 {
	return g.StartY - g.MinY
}

// EntryKind clasifica cada renglón para que el renderizador elija fuente y tamaño.
type EntryKind int

const (
	EntryTitle EntryKind = iota
	EntryDate
	EntryColumns
	EntryLine
	EntryTotal
)

// Entry es un renglón ya formateado con el avance vertical que consume.
type Entry struct {
	Kind    EntryKind
	Text    string
	Advance float64
}

// Page es una página del recibo, con su encabezado repetido.
type Page struct {
	Entries []Entry
}

// LineCount cuenta las líneas de venta de la página.
func (p Page) LineCount() int {
	n := 0
	for _, e := range p.Entries {
		if e.Kind == EntryLine {
			n++
		}
	}
	return n
}

// HasTotal indica si la página contiene el pie con el total.
func (p Page) HasTotal() bool {
	for _, e := range p.Entries {
		if e.Kind == EntryTotal {
			return true
		}
	}
	return false
}

// Height suma el avance de todos los renglones.
func (p Page) Height() float64 {
	h := 0.0
	for _, e := range p.Entries {
		h += e.Advance
	}
	return h
}

// Document es el recibo paginado, listo para serializar.
type Document struct {
	Title     string
	Timestamp string
	Pages     []Page
}

// Paginate distribuye las líneas en páginas de tamaño fijo. Antes de cada línea, si no
// queda espacio, abre una página nueva y repite el encabezado. El total se ubica al final
// y nunca se parte: si no cabe, va solo en una página nueva con su encabezado.
func Paginate(lines []entity.SaleLine, total decimal.Decimal, title, timestamp string, g Geometry) Document {
	doc := Document{Title: title, Timestamp: timestamp}
	header := []Entry{
		{Kind: EntryTitle, Text: title, Advance: g.TitleAdvance},
		{Kind: EntryDate, Text: "Fecha: " + timestamp, Advance: g.DateAdvance},
		{Kind: EntryColumns, Text: ColumnHeader(), Advance: g.ColumnsAdvance},
	}

	var y float64
	newPage := func() {
		entries := make([]Entry, len(header), len(header)+len(lines)+1)
		copy(entries, header)
		doc.Pages = append(doc.Pages, Page{Entries: entries})
		y = g.StartY - g.HeaderAdvance()
	}
	place := func(e Entry) {
		last := &doc.Pages[len(doc.Pages)-1]
		last.Entries = append(last.Entries, e)
		y -= e.Advance
	}

	newPage()
	for _, l := range lines {
		if y-g.LineAdvance < g.MinY {
			newPage()
		}
		place(Entry{Kind: EntryLine, Text: FormatLine(l), Advance: g.LineAdvance})
	}
	if y-g.FooterAdvance < g.MinY {
		newPage()
	}
	place(Entry{Kind: EntryTotal, Text: FormatTotal(total), Advance: g.FooterAdvance})
	return doc
}
