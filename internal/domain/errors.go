package domain

import (
	"errors"
	"fmt"
)

// Tipos de error del dominio. Los errores concretos envuelven uno de estos con %w,
// de modo que errors.Is(err, domain.ErrAuth) funciona en cualquier capa.
var (
	ErrValidation = errors.New("entrada inválida")
	ErrAuth       = errors.New("no autorizado")
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrIO         = errors.New("error de entrada/salida")
	ErrRender     = errors.New("error al generar el documento")
	ErrConflict   = errors.New("conflicto con el estado actual")
)

// Errores concretos.
var (
	ErrEmptyRequest        = fmt.Errorf("%w: no hay ventas para generar el recibo", ErrValidation)
	ErrNonPositiveQuantity = fmt.Errorf("%w: la cantidad debe ser mayor a 0", ErrValidation)
	ErrInsufficientStock   = fmt.Errorf("%w: stock insuficiente", ErrValidation)

	ErrMissingCredential = fmt.Errorf("%w: se requiere clave de administrador", ErrAuth)
	ErrInvalidCredential = fmt.Errorf("%w: clave de administrador incorrecta", ErrAuth)
	ErrInvalidLogin      = fmt.Errorf("%w: contraseña incorrecta", ErrAuth)

	ErrItemNotFound = fmt.Errorf("%w: no se encontro el producto", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("%w: usuario no encontrado", ErrNotFound)

	ErrDuplicate = fmt.Errorf("%w: recurso duplicado", ErrConflict)
)

// AuthReason devuelve el motivo corto de un error de autorización
// ("MissingCredential", "InvalidCredential", "InvalidLogin") o "" si no aplica.
func AuthReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "MissingCredential"
	case errors.Is(err, ErrInvalidCredential):
		return "InvalidCredential"
	case errors.Is(err, ErrInvalidLogin):
		return "InvalidLogin"
	default:
		return ""
	}
}
