package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
	"github.com/jhoicas/ventas-pos/pkg/jwt"
	"github.com/jhoicas/ventas-pos/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminVerifier valida una clave de administrador (lo implementa receipt.AuthorizationGate).
type AdminVerifier interface {
	CheckAdminPassword(ctx context.Context, password string) error
}

// AuthUseCase casos de uso de autenticación: login, verificación de administrador y registro.
type AuthUseCase struct {
	users  repository.CredentialRepository
	admins AdminVerifier
	jwtCfg JWTConfig
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.CredentialRepository, admins AdminVerifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, admins: admins, jwtCfg: jwtCfg, now: time.Now}
}

// Login verifica usuario/clave y devuelve la sesión firmada como JWT.
// Retorna domain.ErrUserNotFound o domain.ErrInvalidLogin; ambos se presentan igual al cliente.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrValidation)
	}
	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar usuario: %w", domain.ErrIO, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !password.Matches(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidLogin
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Name, user.IsAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success: true,
		Message: "Bienvenido " + user.Name,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

// VerifyAdminPassword valida una clave contra las de los administradores, sin modificar nada.
func (uc *AuthUseCase) VerifyAdminPassword(ctx context.Context, in dto.VerifyAdminRequest) error {
	return uc.admins.CheckAdminPassword(ctx, in.Password)
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Username)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre de usuario es obligatorio", domain.ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: la contraseña es obligatoria", domain.ErrValidation)
	}
	existing, err := uc.users.FindByUsername(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar usuario: %w", domain.ErrIO, err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         name,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Username:  u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
