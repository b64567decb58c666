package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-pos/internal/domain/repository"
)

var _ repository.ReceiptSequenceRepository = (*ReceiptSequenceRepo)(nil)

// ReceiptSequenceRepo contador de recibos por fecha en la tabla receipt_sequences.
type ReceiptSequenceRepo struct {
	q Querier
}

// NewReceiptSequenceRepository construye el contador.
func NewReceiptSequenceRepository(q Querier) *ReceiptSequenceRepo {
	return &ReceiptSequenceRepo{q: q}
}

// Next incrementa el consecutivo en una sola sentencia; la fila bloqueada por el upsert
// serializa a los emisores concurrentes de la misma fecha.
func (r *ReceiptSequenceRepo) Next(ctx context.Context, dateStamp string, floor int) (int, error) {
	if floor < 1 {
		floor = 1
	}
	query := `
		INSERT INTO receipt_sequences (date_stamp, last_sequence)
		VALUES ($1, $2)
		ON CONFLICT (date_stamp)
		DO UPDATE SET last_sequence = GREATEST(receipt_sequences.last_sequence + 1, $2)
		RETURNING last_sequence`
	var seq int
	if err := r.q.QueryRow(ctx, query, dateStamp, floor).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next receipt sequence %s: %w", dateStamp, err)
	}
	return seq, nil
}
