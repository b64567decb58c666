package repository

import "context"

// ReceiptSequenceRepository guarda el último consecutivo emitido por fecha.
type ReceiptSequenceRepository interface {
	// Next incrementa de forma atómica el consecutivo de dateStamp y devuelve
	// max(último+1, floor). floor debe ser >= 1.
	Next(ctx context.Context, dateStamp string, floor int) (int, error)
}
