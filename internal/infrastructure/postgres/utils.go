package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isCheckViolation verifica si un error viola un CHECK (p. ej. existencias negativas).
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}
