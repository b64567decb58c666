package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/ventas-pos/internal/domain/repository"
)

var _ repository.ReceiptSequenceRepository = (*ReceiptSequenceRepo)(nil)

// ReceiptSequenceRepo contador de recibos por fecha en "receipt_sequences".
type ReceiptSequenceRepo struct {
	db *sql.DB
}

// Next incrementa el consecutivo con un upsert; SQLite (3.35+) devuelve el valor con RETURNING.
func (r *ReceiptSequenceRepo) Next(ctx context.Context, dateStamp string, floor int) (int, error) {
	if floor < 1 {
		floor = 1
	}
	var seq int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO receipt_sequences (date_stamp, last_sequence) VALUES (?1, ?2)
		ON CONFLICT (date_stamp) DO UPDATE SET last_sequence = max(last_sequence + 1, ?2)
		RETURNING last_sequence`, dateStamp, floor).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next receipt sequence %s: %w", dateStamp, err)
	}
	return seq, nil
}
