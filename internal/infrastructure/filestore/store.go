package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/ventas-pos/internal/application/receipt"
	"github.com/jhoicas/ventas-pos/internal/domain"
)

var _ receipt.DocumentStore = (*FileStore)(nil)

// Prefijo y sufijo de los temporales. Nunca coinciden con "<YYYYMMDD>...pdf".
const (
	tempPattern = ".recibo-*.tmp"
	dirPerm     = 0o755
	filePerm    = 0o644
)

// FileStore escribe cada recibo en un temporal de la misma carpeta y lo renombra al
// nombre final solo cuando está completo: un corte a mitad de escritura no deja un
// PDF truncado con nombre de recibo.
type FileStore struct{}

// NewFileStore construye el almacén de documentos en disco.
func NewFileStore() *FileStore { return &FileStore{} }

// Save escribe data como dir/name y devuelve la ruta absoluta.
func (s *FileStore) Save(_ context.Context, dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("%w: crear carpeta de recibos: %w", domain.ErrIO, err)
	}
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("%w: crear temporal: %w", domain.ErrIO, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: escribir PDF: %w", domain.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: sincronizar PDF: %w", domain.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: cerrar PDF: %w", domain.ErrIO, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return "", fmt.Errorf("%w: permisos del PDF: %w", domain.ErrIO, err)
	}

	final := filepath.Join(dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		return "", fmt.Errorf("%w: mover PDF a %s: %w", domain.ErrIO, final, err)
	}
	committed = true

	abs, err := filepath.Abs(final)
	if err != nil {
		return final, nil
	}
	return abs, nil
}

// Locate devuelve la ruta absoluta de dir/name si existe.
func (s *FileStore) Locate(_ context.Context, dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: recibo %s", domain.ErrNotFound, name)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: recibo %s", domain.ErrNotFound, name)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs, nil
	}
	return path, nil
}
