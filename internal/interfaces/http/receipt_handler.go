package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
)

// ReceiptService lo que el handler necesita de receipt.IssueUseCase.
type ReceiptService interface {
	Issue(ctx context.Context, session entity.Session, in dto.IssueReceiptRequest) (*dto.IssueReceiptResponse, error)
	Locate(ctx context.Context, name string) (string, error)
	ArchiveDay(ctx context.Context, date string) ([]byte, int, error)
}

// ReceiptHandler emite y descarga recibos.
type ReceiptHandler struct {
	uc  ReceiptService
	log zerolog.Logger
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc ReceiptService, log zerolog.Logger) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, log: log}
}

// Issue godoc
// @Summary      Emitir recibo
// @Description  Genera el PDF "<YYYYMMDD>-<N>.pdf". El cierre del día exige sesión de administrador
// @Description  o admin_password de algún administrador.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueReceiptRequest  true  "lines, total, is_day_closure, admin_password"
// @Success      201   {object}  dto.IssueReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Issue(c.UserContext(), SessionFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Download godoc
// @Summary      Descargar un recibo emitido
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        name  path  string  true  "nombre del archivo, p. ej. 20240101-3.pdf"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts/{name} [get]
func (h *ReceiptHandler) Download(c *fiber.Ctx) error {
	name := c.Params("name")
	path, err := h.uc.Locate(c.UserContext(), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Type("pdf")
	return c.Download(path, name)
}

// ArchiveDay godoc
// @Summary      Descargar los recibos de un día en ZIP (solo administradores)
// @Tags         receipts
// @Security     Bearer
// @Produce      application/zip
// @Param        date  path  string  true  "fecha YYYYMMDD"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts/archive/{date} [get]
func (h *ReceiptHandler) ArchiveDay(c *fiber.Ctx) error {
	if !SessionFrom(c).IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo un administrador puede descargar el día"})
	}
	date := c.Params("date")
	data, n, err := h.uc.ArchiveDay(c.UserContext(), date)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recibos-%s.zip"`, date))
	c.Set("X-Receipt-Count", strconv.Itoa(n))
	c.Type("zip")
	return c.Send(data)
}
