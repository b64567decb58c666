package receipt

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos/internal/domain/entity"
)

// RenderInput datos que el renderizador convierte en el documento imprimible.
type RenderInput struct {
	Lines     []entity.SaleLine
	Total     decimal.Decimal
	Title     string
	Timestamp string
}

// DocumentRenderer serializa un recibo paginado. Cualquier fallo es domain.ErrRender.
type DocumentRenderer interface {
	Render(ctx context.Context, in RenderInput) ([]byte, error)
}

// SequenceAllocator propone el siguiente consecutivo de dateStamp en dir (empieza en 1).
type SequenceAllocator interface {
	NextSequence(ctx context.Context, dir, dateStamp string) (int, error)
}

// DocumentStore persiste y localiza los recibos emitidos.
type DocumentStore interface {
	// Save escribe data como dir/name (creando dir si no existe) y devuelve la ruta absoluta.
	Save(ctx context.Context, dir, name string, data []byte) (string, error)
	// Locate devuelve la ruta absoluta de dir/name o domain.ErrNotFound.
	Locate(ctx context.Context, dir, name string) (string, error)
	// Archive empaqueta los recibos de dateStamp en un ZIP; domain.ErrNotFound si no hay.
	Archive(ctx context.Context, dir, dateStamp string) ([]byte, int, error)
}

// AdminCredentialChecker es lo único que la compuerta necesita del almacén de credenciales.
type AdminCredentialChecker interface {
	CountAdminsWithPassword(ctx context.Context, password string) (int, error)
}
