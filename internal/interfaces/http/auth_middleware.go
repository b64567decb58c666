package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/pkg/jwt"
)

// LocalSession clave en c.Locals donde queda la sesión del token.
const LocalSession = "session"

// AuthMiddleware valida el Bearer Token JWT y deja la sesión (usuario, privilegio) en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		// "Bearer" sin token llega así porque fasthttp recorta los espacios finales.
		if strings.EqualFold(strings.TrimSpace(authHeader), "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSession, entity.Session{ID: claims.ID, Username: claims.Username, IsAdmin: claims.IsAdmin})
		return c.Next()
	}
}

// SessionFrom devuelve la sesión del contexto; entity.Anonymous si no pasó por AuthMiddleware.
func SessionFrom(c *fiber.Ctx) entity.Session {
	if s, ok := c.Locals(LocalSession).(entity.Session); ok {
		return s
	}
	return entity.Anonymous
}
