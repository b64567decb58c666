// Package filestore guarda los recibos en disco y calcula su consecutivo por fecha.
package filestore

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/ventas-pos/internal/application/receipt"
	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
	domreceipt "github.com/jhoicas/ventas-pos/internal/domain/receipt"
)

var (
	_ receipt.SequenceAllocator = (*ScanAllocator)(nil)
	_ receipt.SequenceAllocator = (*CounterAllocator)(nil)
)

// MaxSequence devuelve el mayor consecutivo de dateStamp presente en dir, o 0.
// Una carpeta inexistente o ilegible cuenta como vacía; los nombres que no siguen
// el patrón "<dateStamp>...-<N>.pdf" se ignoran.
func MaxSequence(dir, dateStamp string) int {
	// ReadDir devuelve lo leído hasta el error; se aprovecha igual.
	entries, _ := os.ReadDir(dir)
	highest := 0
	for _, e := range entries {
		if n, ok := domreceipt.SequenceOf(e.Name(), dateStamp); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// ScanAllocator propone max(existentes)+1 leyendo la carpeta.
//
// Lee y luego otro escribe, sin bloqueo: dos emisiones simultáneas del mismo día pueden
// obtener el mismo número y la segunda reemplaza el archivo de la primera.
type ScanAllocator struct{}

// NewScanAllocator construye el asignador por escaneo de carpeta.
func NewScanAllocator() *ScanAllocator { return &ScanAllocator{} }

// NextSequence nunca falla: en el peor caso devuelve 1.
func (a *ScanAllocator) NextSequence(_ context.Context, dir, dateStamp string) (int, error) {
	return MaxSequence(dir, dateStamp) + 1, nil
}

// CounterAllocator lleva el último consecutivo por fecha en el almacén transaccional.
// La carpeta solo fija el piso (max(existentes)+1), así que la numeración visible
// sigue siendo la misma: empieza en 1, crece por fecha y no se repite.
type CounterAllocator struct {
	counter repository.ReceiptSequenceRepository
}

// NewCounterAllocator construye el asignador sobre el contador persistente.
func NewCounterAllocator(counter repository.ReceiptSequenceRepository) *CounterAllocator {
	return &CounterAllocator{counter: counter}
}

// NextSequence incrementa el contador de dateStamp de forma atómica.
func (a *CounterAllocator) NextSequence(ctx context.Context, dir, dateStamp string) (int, error) {
	floor := MaxSequence(dir, dateStamp) + 1
	n, err := a.counter.Next(ctx, dateStamp, floor)
	if err != nil {
		return 0, fmt.Errorf("%w: contador de recibos %s: %w", domain.ErrIO, dateStamp, err)
	}
	return n, nil
}
