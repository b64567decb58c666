// Package sqlite implementa los repositorios sobre un único archivo SQLite,
// compatible con la base de datos de la caja original.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store mantiene la conexión a la base de datos.
type Store struct {
	db *sql.DB
}

// Open crea o abre la base en path, aplica pragmas y el esquema. Es idempotente.
//
// Configuración:
//   - WAL para lecturas durante escrituras
//   - busy_timeout de 5 s ante bloqueos
//   - una sola conexión: SQLite admite un único escritor
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("conectar base de datos: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB devuelve el *sql.DB subyacente.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Credentials devuelve el repositorio de usuarios.
func (s *Store) Credentials() *CredentialRepo { return &CredentialRepo{q: s.db} }

// Inventory devuelve el repositorio de inventario fuera de transacción.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{q: s.db} }

// ReceiptSequences devuelve el contador de recibos.
func (s *Store) ReceiptSequences() *ReceiptSequenceRepo { return &ReceiptSequenceRepo{db: s.db} }

// TxRunner devuelve el ejecutor de transacciones de inventario.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{db: s.db} }

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("ejecutar %q: %w", pragma, err)
		}
	}
	return nil
}

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == code
}

func isUniqueViolation(err error) bool {
	return isConstraint(err, sqlite3.ErrConstraintPrimaryKey) || isConstraint(err, sqlite3.ErrConstraintUnique)
}

func isCheckViolation(err error) bool {
	return isConstraint(err, sqlite3.ErrConstraintCheck)
}
