package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ventas-pos/internal/application/auth"
	"github.com/jhoicas/ventas-pos/internal/application/inventory"
	"github.com/jhoicas/ventas-pos/internal/application/receipt"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/ventas-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/ventas-pos/internal/interfaces/http"
	"github.com/jhoicas/ventas-pos/pkg/config"
	"github.com/jhoicas/ventas-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Driver).
		Str("receipts_dir", cfg.Receipt.Dir).
		Str("sequence", cfg.Receipt.Sequence).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer store.Close()

	// Consecutivo: contador en la DB (sin duplicados) o escaneo de la carpeta.
	var allocator receipt.SequenceAllocator = filestore.NewCounterAllocator(store.Sequences)
	if cfg.Receipt.Sequence == config.SequenceScan {
		log.Warn().Msg("consecutivo por escaneo: dos cajas simultáneas pueden repetir número")
		allocator = filestore.NewScanAllocator()
	}

	gate := receipt.NewAuthorizationGate(store.Credentials)
	issueUC := receipt.NewIssueUseCase(
		gate,
		allocator,
		infrapdf.NewMarotoReceiptRenderer(),
		filestore.NewFileStore(),
		receipt.IssueConfig{OutputDir: cfg.Receipt.Dir},
		log.Component("receipts"),
	)
	inventoryUC := inventory.NewInventoryUseCase(store.Inventory, store.TxRunner)
	authUC := auth.NewAuthUseCase(store.Credentials, gate, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	loginLimiter := httpRouter.NewIPRateLimiter(httpRouter.RateLimiterConfig{
		RequestsPerSecond: cfg.HTTP.LoginRatePerSecond,
		Burst:             cfg.HTTP.LoginBurst,
	})
	defer loginLimiter.Stop()

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas POS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		ReceiptUC:   issueUC,
		JWTSecret:   cfg.JWT.Secret,
		LoginLimit:  loginLimiter,
		ServiceName: cfg.App.Name,
		Log:         httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
