package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain"
)

// AuthService lo que el handler necesita de auth.AuthUseCase.
type AuthService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyAdminPassword(ctx context.Context, in dto.VerifyAdminRequest) error
	RegisterUser(ctx context.Context, in dto.RegisterUserRequest) (*dto.UserResponse, error)
}

// AuthHandler maneja login, verificación de administrador y alta de usuarios.
type AuthHandler struct {
	uc  AuthService
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		// Usuario inexistente y clave incorrecta se responden igual.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidLogin) {
			h.log.Warn().Str("user", in.Username).Str("ip", c.IP()).Msg("login rechazado")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.LoginResponse{
				Success: false,
				Message: "usuario o contraseña incorrectos",
			})
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// VerifyAdmin godoc
// @Summary      Validar clave de administrador
// @Description  No modifica nada; sirve para habilitar el cierre del día en la caja.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyAdminRequest  true  "password"
// @Success      200   {object}  map[string]bool
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-admin [post]
func (h *AuthHandler) VerifyAdmin(c *fiber.Ctx) error {
	var in dto.VerifyAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.VerifyAdminPassword(c.UserContext(), in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"valid": true})
}

// Register godoc
// @Summary      Registrar usuario (solo administradores)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUserRequest  true  "username, email, password, is_admin"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/users [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	if !SessionFrom(c).IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo un administrador puede crear usuarios"})
	}
	var in dto.RegisterUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
