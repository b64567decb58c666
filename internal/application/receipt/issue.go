// Package receipt orquesta la emisión de recibos de venta: autorización del cierre
// del día, consecutivo por fecha, renderizado y escritura del documento.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	domreceipt "github.com/jhoicas/ventas-pos/internal/domain/receipt"
)

// Títulos impresos en la cabecera de cada página.
const (
	TitleCustomer   = "Recibo cliente"
	TitleDayClosure = "Recibo cierre del dia"
)

// TimestampLayout formato de la fecha impresa en el encabezado.
const TimestampLayout = "2006-01-02 15:04"

// IssueConfig configuración del caso de uso.
type IssueConfig struct {
	OutputDir string           // carpeta de recibos por defecto
	Now       func() time.Time // reloj; time.Now si es nil
}

// IssueUseCase es el motor de emisión de recibos.
// No serializa llamadas concurrentes: la unicidad del consecutivo depende del SequenceAllocator.
type IssueUseCase struct {
	gate      *AuthorizationGate
	allocator SequenceAllocator
	renderer  DocumentRenderer
	store     DocumentStore
	cfg       IssueConfig
	log       zerolog.Logger
}

// NewIssueUseCase construye el caso de uso inyectando todas sus dependencias.
func NewIssueUseCase(
	gate *AuthorizationGate,
	allocator SequenceAllocator,
	renderer DocumentRenderer,
	store DocumentStore,
	cfg IssueConfig,
	log zerolog.Logger,
) *IssueUseCase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &IssueUseCase{
		gate:      gate,
		allocator: allocator,
		renderer:  renderer,
		store:     store,
		cfg:       cfg,
		log:       log,
	}
}

// Issue emite el recibo en la carpeta configurada.
func (uc *IssueUseCase) Issue(ctx context.Context, session entity.Session, in dto.IssueReceiptRequest) (*dto.IssueReceiptResponse, error) {
	return uc.IssueTo(ctx, session, in, uc.cfg.OutputDir)
}

// IssueTo emite el recibo en outputDir. Cada paso puede cortar el resto; no hay reintentos.
//
// Retorna:
//   - domain.ErrEmptyRequest                               si no hay líneas.
//   - domain.ErrMissingCredential / ErrInvalidCredential   si el cierre del día no está autorizado.
//   - domain.ErrRender / domain.ErrIO                      si falla el documento o la escritura.
func (uc *IssueUseCase) IssueTo(ctx context.Context, session entity.Session, in dto.IssueReceiptRequest, outputDir string) (*dto.IssueReceiptResponse, error) {
	// ── 1. Validar ────────────────────────────────────────────────────────────
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyRequest
	}
	lines := toSaleLines(in.Lines)
	issuanceID := uuid.New().String()
	log := uc.log.With().Str("issuance_id", issuanceID).Bool("day_closure", in.IsDayClosure).Logger()

	// ── 2. Autorizar cierre del día ───────────────────────────────────────────
	if in.IsDayClosure {
		if err := uc.gate.Authorize(ctx, true, in.AdminPassword, session.IsAdmin); err != nil {
			log.Warn().Str("user", session.Username).Str("reason", domain.AuthReason(err)).Msg("cierre del día rechazado")
			return nil, err
		}
	}

	// ── 3. Consecutivo del día ────────────────────────────────────────────────
	now := uc.cfg.Now()
	stamp := domreceipt.DateStamp(now)
	seq, err := uc.allocator.NextSequence(ctx, outputDir, stamp)
	if err != nil {
		return nil, fmt.Errorf("recibo: asignar consecutivo: %w", err)
	}

	// ── 4. Nombre y título ────────────────────────────────────────────────────
	name := domreceipt.FileName{DateStamp: stamp, Sequence: seq}
	title := TitleCustomer
	if in.IsDayClosure {
		title = TitleDayClosure
	}

	for _, l := range lines {
		if !l.SubtotalConsistent() {
			log.Warn().
				Int64("item_id", l.ID).
				Str("subtotal", l.Subtotal.String()).
				Str("expected", l.ExpectedSubtotal().String()).
				Msg("subtotal distinto de precio por cantidad; se imprime tal cual")
		}
	}

	// ── 5. Renderizar y escribir ──────────────────────────────────────────────
	pdfBytes, err := uc.renderer.Render(ctx, RenderInput{
		Lines:     lines,
		Total:     in.Total,
		Title:     title,
		Timestamp: now.Format(TimestampLayout),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrRender) {
			err = fmt.Errorf("%w: %w", domain.ErrRender, err)
		}
		return nil, fmt.Errorf("recibo: renderizar: %w", err)
	}
	path, err := uc.store.Save(ctx, outputDir, name.String(), pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("recibo: guardar %s: %w", name, err)
	}

	// ── 6. Responder ──────────────────────────────────────────────────────────
	log.Info().
		Str("path", path).
		Int("sequence", seq).
		Int("lines", len(lines)).
		Msg("recibo emitido")
	return &dto.IssueReceiptResponse{Path: path, FileName: name.String(), Sequence: seq}, nil
}

// Locate devuelve la ruta de un recibo ya emitido en la carpeta configurada.
// El nombre debe tener la forma "<YYYYMMDD>-<N>.pdf".
func (uc *IssueUseCase) Locate(ctx context.Context, name string) (string, error) {
	fn, err := domreceipt.ParseFileName(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return uc.store.Locate(ctx, uc.cfg.OutputDir, fn.String())
}

// ArchiveDay devuelve un ZIP con los recibos emitidos en la fecha date (YYYYMMDD)
// y cuántos contiene. Se usa para entregar el día a contabilidad.
func (uc *IssueUseCase) ArchiveDay(ctx context.Context, date string) ([]byte, int, error) {
	if _, err := time.Parse(domreceipt.DateStampLayout, date); err != nil || len(date) != len(domreceipt.DateStampLayout) {
		return nil, 0, fmt.Errorf("%w: fecha %q, se espera YYYYMMDD", domain.ErrValidation, date)
	}
	data, n, err := uc.store.Archive(ctx, uc.cfg.OutputDir, date)
	if err != nil {
		return nil, 0, err
	}
	uc.log.Info().Str("date", date).Int("receipts", n).Msg("recibos del día empaquetados")
	return data, n, nil
}

func toSaleLines(in []dto.SaleLineRequest) []entity.SaleLine {
	out := make([]entity.SaleLine, 0, len(in))
	for _, l := range in {
		out = append(out, entity.SaleLine{
			ID:        l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}
