package receipt_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/receipt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTitle     = "Recibo cliente"
	testTimestamp = "2024-01-01 10:30"
)

// twentyPerPage deja exactamente 20 líneas por página y espacio para el pie
// después de la línea 20 (el pie ocupa menos que una línea).
func twentyPerPage() receipt.Geometry {
	return receipt.Geometry{
		StartY:         134,
		MinY:           6,
		TitleAdvance:   8,
		DateAdvance:    10,
		ColumnsAdvance: 6,
		LineAdvance:    5,
		FooterAdvance:  4,
	}
}

func buildLines(n int) []entity.SaleLine {
	lines := make([]entity.SaleLine, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, entity.SaleLine{
			ID:        int64(i),
			Name:      fmt.Sprintf("Producto %d", i),
			UnitPrice: decimal.NewFromInt(2),
			Quantity:  1,
			Subtotal:  decimal.NewFromInt(2),
		})
	}
	return lines
}

func assertHeader(t *testing.T, p receipt.Page) {
	t.Helper()
	require.GreaterOrEqual(t, len(p.Entries), 3)
	assert.Equal(t, receipt.EntryTitle, p.Entries[0].Kind)
	assert.Equal(t, testTitle, p.Entries[0].Text)
	assert.Equal(t, receipt.EntryDate, p.Entries[1].Kind)
	assert.Equal(t, "Fecha: "+testTimestamp, p.Entries[1].Text)
	assert.Equal(t, receipt.EntryColumns, p.Entries[2].Kind)
	assert.Equal(t, receipt.ColumnHeader(), p.Entries[2].Text)
}

func countTotals(doc receipt.Document) int {
	n := 0
	for _, p := range doc.Pages {
		for _, e := range p.Entries {
			if e.Kind == receipt.EntryTotal {
				n++
			}
		}
	}
	return n
}

func dump(doc receipt.Document) string {
	var b strings.Builder
	for i, p := range doc.Pages {
		fmt.Fprintf(&b, "página %d\n", i+1)
		for _, e := range p.Entries {
			b.WriteString(e.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestPaginate_SesentaLineasEnTresPaginas(t *testing.T) {
	doc := receipt.Paginate(buildLines(60), decimal.NewFromInt(120), testTitle, testTimestamp, twentyPerPage())

	require.Len(t, doc.Pages, 3)
	for i, p := range doc.Pages {
		assertHeader(t, p)
		assert.Equal(t, 20, p.LineCount(), "página %d", i+1)
	}
	assert.Equal(t, 1, countTotals(doc), "el total aparece una sola vez")
	assert.True(t, doc.Pages[2].HasTotal(), "el total va en la última página")
	last := doc.Pages[2].Entries
	assert.Equal(t, receipt.EntryTotal, last[len(last)-1].Kind)
}

func TestPaginate_ConservaElOrdenDeLasLineas(t *testing.T) {
	doc := receipt.Paginate(buildLines(45), decimal.Zero, testTitle, testTimestamp, twentyPerPage())

	var got []string
	for _, p := range doc.Pages {
		for _, e := range p.Entries {
			if e.Kind == receipt.EntryLine {
				got = append(got, e.Text)
			}
		}
	}
	require.Len(t, got, 45)
	for i, l := range buildLines(45) {
		assert.Equal(t, receipt.FormatLine(l), got[i])
	}
}

func TestPaginate_GeometriaPorDefecto(t *testing.T) {
	g := receipt.DefaultGeometry()

	// 25 líneas llenan la primera página; el total no cabe y pasa a una nueva.
	doc := receipt.Paginate(buildLines(25), decimal.NewFromInt(50), testTitle, testTimestamp, g)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 25, doc.Pages[0].LineCount())
	assert.False(t, doc.Pages[0].HasTotal())
	assertHeader(t, doc.Pages[1])
	assert.Equal(t, 0, doc.Pages[1].LineCount())
	assert.True(t, doc.Pages[1].HasTotal())

	// 24 líneas caben, pero el pie (más alto que una línea) ya no.
	doc = receipt.Paginate(buildLines(24), decimal.NewFromInt(48), testTitle, testTimestamp, g)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 24, doc.Pages[0].LineCount())
	assert.True(t, doc.Pages[1].HasTotal())

	// 23 líneas: el total cabe en la misma página.
	doc = receipt.Paginate(buildLines(23), decimal.NewFromInt(46), testTitle, testTimestamp, g)
	require.Len(t, doc.Pages, 1)
	assert.True(t, doc.Pages[0].HasTotal())

	// 60 líneas: 25 + 25 + 10 y el total.
	doc = receipt.Paginate(buildLines(60), decimal.NewFromInt(120), testTitle, testTimestamp, g)
	require.Len(t, doc.Pages, 3)
	assert.Equal(t, []int{25, 25, 10},
		[]int{doc.Pages[0].LineCount(), doc.Pages[1].LineCount(), doc.Pages[2].LineCount()})
	assert.Equal(t, 1, countTotals(doc))
}

func TestPaginate_NingunaPaginaExcedeElPresupuesto(t *testing.T) {
	g := receipt.DefaultGeometry()
	for _, n := range []int{1, 24, 25, 26, 49, 50, 51, 137} {
		doc := receipt.Paginate(buildLines(n), decimal.Zero, testTitle, testTimestamp, g)
		for i, p := range doc.Pages {
			assert.LessOrEqual(t, p.Height(), g.Usable(), "n=%d página %d", n, i+1)
		}
	}
}

func TestPaginate_LayoutDorado(t *testing.T) {
	lines := []entity.SaleLine{
		{ID: 1, Name: "Arroz", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2, Subtotal: decimal.RequireFromString("5")},
		{ID: 12, Name: "Aceite de girasol extra virgen 1L", UnitPrice: decimal.NewFromInt(12), Quantity: 1, Subtotal: decimal.NewFromInt(12)},
	}
	doc := receipt.Paginate(lines, decimal.NewFromInt(17), testTitle, testTimestamp, receipt.DefaultGeometry())

	g := goldie.New(t)
	g.Assert(t, "receipt_layout", []byte(dump(doc)))
}
