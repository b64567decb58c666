package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
	"github.com/jhoicas/ventas-pos/pkg/password"
)

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

const timeLayout = "2006-01-02T15:04:05Z"

// CredentialRepo usuarios de la tabla "users". La columna "password" guarda el hash bcrypt.
type CredentialRepo struct {
	q querier
}

// Create persiste un nuevo usuario.
func (r *CredentialRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users ("name", "password", "correo electronico", "Admin", "created_at") VALUES (?, ?, ?, ?, ?)`,
		user.Name, user.PasswordHash, user.Email, boolToInt(user.IsAdmin), user.CreatedAt.UTC().Format(timeLayout),
	)
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
	var (
		u       entity.User
		admin   int
		created string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT "name", "password", "correo electronico", "Admin", "created_at" FROM users WHERE "name" = ?`, name,
	).Scan(&u.Name, &u.PasswordHash, &u.Email, &admin, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by name: %w", err)
	}
	u.IsAdmin = admin != 0
	u.CreatedAt, _ = time.Parse(timeLayout, created)
	return &u, nil
}

// CountAdminsWithPassword compara plain contra el hash de cada administrador.
func (r *CredentialRepo) CountAdminsWithPassword(ctx context.Context, plain string) (int, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT "password" FROM users WHERE "Admin" = 1`)
	if err != nil {
		return 0, fmt.Errorf("list admin hashes: %w", err)
	}
	defer rows.Close()
	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return 0, fmt.Errorf("scan admin hash: %w", err)
		}
		hashes = append(hashes, h)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return password.CountMatches(hashes, plain), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
