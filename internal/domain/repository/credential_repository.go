package repository

import (
	"context"

	"github.com/jhoicas/ventas-pos/internal/domain/entity"
)

// CredentialRepository define el puerto de persistencia para usuarios y sus claves.
type CredentialRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByUsername devuelve (nil, nil) si el usuario no existe.
	FindByUsername(ctx context.Context, name string) (*entity.User, error)
	// CountAdminsWithPassword cuenta los administradores cuya clave coincide con password.
	CountAdminsWithPassword(ctx context.Context, password string) (int, error)
}
