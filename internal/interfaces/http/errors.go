package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain"
)

// errorMapping traduce un error de dominio a status HTTP y código.
// El orden importa: los errores concretos van antes que su tipo.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrMissingCredential, fiber.StatusUnauthorized, "MISSING_CREDENTIAL"},
	{domain.ErrInvalidCredential, fiber.StatusForbidden, "INVALID_CREDENTIAL"},
	{domain.ErrInvalidLogin, fiber.StatusUnauthorized, "INVALID_LOGIN"},
	{domain.ErrAuth, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrEmptyRequest, fiber.StatusBadRequest, "EMPTY_REQUEST"},
	{domain.ErrNonPositiveQuantity, fiber.StatusBadRequest, "NON_POSITIVE_QUANTITY"},
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrRender, fiber.StatusInternalServerError, "RENDER_ERROR"},
	{domain.ErrIO, fiber.StatusInternalServerError, "IO_ERROR"},
}

// writeError responde {code, message}. Los 5xx no exponen la causa al cliente; se registra.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			status, code = m.status, m.code
			break
		}
	}
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", RequestID(c)).Str("path", c.Path()).Msg("error interno")
		msg = "error interno, intente de nuevo"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de ruta, pánicos recuperados).
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		return writeError(c, log, err)
	}
}
