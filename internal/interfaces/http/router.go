package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      AuthService
	InventoryUC InventoryService
	ReceiptUC   ReceiptService
	JWTSecret   string
	LoginLimit  *IPRateLimiter
	ServiceName string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")
	limit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.LoginLimit != nil {
		limit = deps.LoginLimit.Middleware()
	}

	// Auth (login público y limitado por IP)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", limit, authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/verify-admin", limit, authHandler.VerifyAdmin)
	protected.Post("/auth/users", authHandler.Register)

	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Log)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/by-name/:name", inventoryHandler.GetByName)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Post("/:id/sales", inventoryHandler.RegisterSale)
	inv.Post("/:id/purchases", inventoryHandler.RegisterPurchase)

	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.Log)
	receipts.Post("/", receiptHandler.Issue)
	receipts.Get("/archive/:date", receiptHandler.ArchiveDay)
	receipts.Get("/:name", receiptHandler.Download)
}
