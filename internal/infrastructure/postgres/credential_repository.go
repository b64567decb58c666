package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
	"github.com/jhoicas/ventas-pos/pkg/password"
)

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo implementación del puerto CredentialRepository sobre PostgreSQL.
type CredentialRepo struct {
	q Querier
}

// NewCredentialRepository construye el adaptador de persistencia para usuarios.
func NewCredentialRepository(q Querier) *CredentialRepo {
	return &CredentialRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *CredentialRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, user.Name, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByUsername obtiene un usuario por nombre; (nil, nil) si no existe.
func (r *CredentialRepo) FindByUsername(ctx context.Context, name string) (*entity.User, error) {
	query := `
		SELECT name, email, password_hash, is_admin, created_at
		FROM users WHERE name = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, name).Scan(&u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by name: %w", err)
	}
	return &u, nil
}

// CountAdminsWithPassword compara plain contra el hash de cada administrador.
// Los hashes bcrypt llevan sal, así que la comparación no puede hacerse en SQL.
func (r *CredentialRepo) CountAdminsWithPassword(ctx context.Context, plain string) (int, error) {
	rows, err := r.q.Query(ctx, `SELECT password_hash FROM users WHERE is_admin`)
	if err != nil {
		return 0, fmt.Errorf("list admin hashes: %w", err)
	}
	hashes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return 0, fmt.Errorf("scan admin hashes: %w", err)
	}
	return password.CountMatches(hashes, plain), nil
}
