package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/domain"
)

// InventoryService lo que el handler necesita de inventory.InventoryUseCase.
type InventoryService interface {
	List(ctx context.Context) (*dto.ItemListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error)
	GetByName(ctx context.Context, name string) (*dto.ItemResponse, error)
	Insert(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error)
	RegisterSale(ctx context.Context, id int64, qty int64) (*dto.ItemResponse, error)
	RegisterPurchase(ctx context.Context, id int64, qty int64) (*dto.ItemResponse, error)
}

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	uc  InventoryService
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc InventoryService, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id inválido %q", domain.ErrValidation, c.Params("id"))
	}
	return id, nil
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por id
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "id del producto"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByName godoc
// @Summary      Buscar producto por nombre (sin distinguir mayúsculas)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "nombre"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/by-name/{name} [get]
func (h *InventoryHandler) GetByName(c *fiber.Ctx) error {
	out, err := h.uc.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "id, name, unit_price, quantity"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Insert(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "id del producto"
// @Param        body  body  dto.UpdateItemRequest  true  "name, unit_price, quantity"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RegisterSale godoc
// @Summary      Registrar venta (descuenta existencias)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "id del producto"
// @Param        body  body  dto.StockMovementRequest  true  "quantity"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/sales [post]
func (h *InventoryHandler) RegisterSale(c *fiber.Ctx) error {
	return h.movement(c, h.uc.RegisterSale)
}

// RegisterPurchase godoc
// @Summary      Registrar compra (suma existencias)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "id del producto"
// @Param        body  body  dto.StockMovementRequest  true  "quantity"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/purchases [post]
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	return h.movement(c, h.uc.RegisterPurchase)
}

func (h *InventoryHandler) movement(c *fiber.Ctx, apply func(context.Context, int64, int64) (*dto.ItemResponse, error)) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := apply(c.UserContext(), id, in.Quantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
