// Package receipt contiene las reglas puras del recibo de ventas: nombre de archivo
// consecutivo por fecha, formato de columnas de ancho fijo y paginación.
package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Extension es la extensión de todos los recibos emitidos.
const Extension = ".pdf"

// DateStampLayout es el formato YYYYMMDD del prefijo de fecha.
const DateStampLayout = "20060102"

// FileName identifica un recibo: "<YYYYMMDD>-<N>.pdf".
type FileName struct {
	DateStamp string
	Sequence  int
}

// String compone el nombre de archivo. N se escribe en decimal sin ceros a la izquierda.
func (f FileName) String() string {
	return fmt.Sprintf("%s-%d%s", f.DateStamp, f.Sequence, Extension)
}

// DateStamp devuelve el prefijo de fecha de t en hora local.
func DateStamp(t time.Time) string {
	return t.Format(DateStampLayout)
}

// SequenceOf extrae el consecutivo de un nombre existente en el directorio de recibos.
// Es tolerante: cualquier nombre que no tenga el prefijo dateStamp y la extensión .pdf,
// o cuyo último segmento separado por '-' no sea un entero sin signo, devuelve ok=false.
func SequenceOf(name, dateStamp string) (seq int, ok bool) {
	if !strings.HasPrefix(name, dateStamp) || !strings.HasSuffix(name, Extension) {
		return 0, false
	}
	stem := strings.TrimSuffix(name, Extension)
	parts := strings.Split(stem, "-")
	if len(parts) < 2 {
		return 0, false
	}
	n, err := strconv.ParseUint(parts[len(parts)-1], 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// ParseFileName valida estrictamente un nombre de recibo (8 dígitos, '-', entero positivo
// sin ceros a la izquierda, ".pdf"). Se usa para servir descargas sin permitir rutas arbitrarias.
func ParseFileName(name string) (FileName, error) {
	stem, found := strings.CutSuffix(name, Extension)
	if !found {
		return FileName{}, fmt.Errorf("nombre de recibo inválido %q: extensión", name)
	}
	date, seqText, found := strings.Cut(stem, "-")
	if !found || len(date) != len(DateStampLayout) || !allDigits(date) {
		return FileName{}, fmt.Errorf("nombre de recibo inválido %q: fecha", name)
	}
	if _, err := time.Parse(DateStampLayout, date); err != nil {
		return FileName{}, fmt.Errorf("nombre de recibo inválido %q: fecha", name)
	}
	if seqText == "" || seqText[0] == '0' || !allDigits(seqText) {
		return FileName{}, fmt.Errorf("nombre de recibo inválido %q: consecutivo", name)
	}
	seq, err := strconv.Atoi(seqText)
	if err != nil {
		return FileName{}, fmt.Errorf("nombre de recibo inválido %q: %w", name, err)
	}
	return FileName{DateStamp: date, Sequence: seq}, nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
