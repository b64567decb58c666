package filestore

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jhoicas/ventas-pos/internal/domain"
	domreceipt "github.com/jhoicas/ventas-pos/internal/domain/receipt"
)

// Archive empaqueta en un ZIP en memoria todos los recibos de dateStamp presentes en dir,
// ordenados por consecutivo. Devuelve el ZIP y cuántos recibos contiene.
// Sin recibos del día devuelve domain.ErrNotFound.
func (s *FileStore) Archive(ctx context.Context, dir, dateStamp string) ([]byte, int, error) {
	entries, _ := os.ReadDir(dir)
	type found struct {
		name string
		seq  int
	}
	var receipts []found
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := domreceipt.ParseFileName(e.Name()); err != nil {
			continue
		}
		if seq, ok := domreceipt.SequenceOf(e.Name(), dateStamp); ok {
			receipts = append(receipts, found{name: e.Name(), seq: seq})
		}
	}
	if len(receipts) == 0 {
		return nil, 0, fmt.Errorf("%w: no hay recibos del %s", domain.ErrNotFound, dateStamp)
	}
	sort.Slice(receipts, func(i, j int) bool { return receipts[i].seq < receipts[j].seq })

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, r := range receipts {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		data, err := os.ReadFile(filepath.Join(dir, r.name))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: leer %s: %w", domain.ErrIO, r.name, err)
		}
		fw, err := zw.Create(r.name)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: zip: crear entrada %s: %w", domain.ErrIO, r.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return nil, 0, fmt.Errorf("%w: zip: escribir %s: %w", domain.ErrIO, r.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, 0, fmt.Errorf("%w: zip: cerrar archivo: %w", domain.ErrIO, err)
	}
	return buf.Bytes(), len(receipts), nil
}
