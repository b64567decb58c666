// Package pdf implementa el renderizado del recibo de venta con Maroto v2.
//
// Página de 210×180 mm, márgenes de 10 mm arriba/abajo y 12 mm a los lados:
//
//	┌───────────────────────────────────────────────┐
//	│  Recibo cliente                (helvetica 14) │
//	│  Fecha: 2006-01-02 15:04                      │
//	│  ID   Producto ...  Cant  Precio  Subtotal    │  courier: columnas de ancho fijo
//	│  1    Arroz           2   $2.50     $5.00     │
//	│  ...                                          │
//	│  Total: $5.00                 (última página) │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreceipt "github.com/jhoicas/ventas-pos/internal/application/receipt"
	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/receipt"
)

// Dimensiones de la hoja en mm.
const (
	PageWidth    = 210
	PageHeight   = 180
	marginTop    = 10
	marginBottom = 10
	marginSide   = 12
)

var _ appreceipt.DocumentRenderer = (*MarotoReceiptRenderer)(nil)

// ── Estilos por tipo de renglón ───────────────────────────────────────────────

var entryStyle = map[receipt.EntryKind]props.Text{
	receipt.EntryTitle:   {Family: fontfamily.Helvetica, Style: fontstyle.Bold, Size: 14},
	receipt.EntryDate:    {Family: fontfamily.Helvetica, Style: fontstyle.Normal, Size: 10},
	receipt.EntryColumns: {Family: fontfamily.Courier, Style: fontstyle.Bold, Size: 9},
	receipt.EntryLine:    {Family: fontfamily.Courier, Style: fontstyle.Normal, Size: 9},
	receipt.EntryTotal:   {Family: fontfamily.Helvetica, Style: fontstyle.Bold, Size: 12},
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReceiptRenderer pagina el recibo con receipt.Paginate y dibuja cada página con Maroto.
type MarotoReceiptRenderer struct {
	geometry receipt.Geometry
}

// NewMarotoReceiptRenderer construye el renderizador con la geometría por defecto.
func NewMarotoReceiptRenderer() *MarotoReceiptRenderer {
	return &MarotoReceiptRenderer{geometry: receipt.DefaultGeometry()}
}

// Render genera el PDF y devuelve sus bytes. Los errores envuelven domain.ErrRender.
func (r *MarotoReceiptRenderer) Render(ctx context.Context, in appreceipt.RenderInput) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	doc := receipt.Paginate(in.Lines, in.Total, in.Title, in.Timestamp, r.geometry)

	cfg := config.NewBuilder().
		WithDimensions(PageWidth, PageHeight).
		WithTopMargin(marginTop).WithBottomMargin(marginBottom).
		WithLeftMargin(marginSide).WithRightMargin(marginSide).
		WithDefaultFont(&props.Font{Family: fontfamily.Courier, Size: 9}).
		WithTitle(in.Title, true).
		Build()

	m := maroto.New(cfg)
	pages := make([]core.Page, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		pages = append(pages, buildPage(p))
	}
	m.AddPages(pages...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: generar documento: %w", domain.ErrRender, err)
	}
	return out.GetBytes(), nil
}

// buildPage: una fila por renglón, con la altura igual al avance vertical del renglón.
func buildPage(p receipt.Page) core.Page {
	pg := page.New()
	for _, e := range p.Entries {
		pg.Add(row.New(e.Advance).Add(
			col.New(12).Add(text.New(e.Text, entryStyle[e.Kind])),
		))
	}
	return pg
}
