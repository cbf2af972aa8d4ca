package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/application/requirements"
	"github.com/prodflux/prodflux-api/internal/infrastructure/postgres"
	httpRouter "github.com/prodflux/prodflux-api/internal/interfaces/http"
	"github.com/prodflux/prodflux-api/internal/shopbridge"
	"github.com/prodflux/prodflux-api/pkg/config"
	"github.com/prodflux/prodflux-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	productStockRepo := postgres.NewProductStockRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	workshopRepo := postgres.NewWorkshopRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := ledger.NewMovementUseCase(txRunner, movementRepo, stockRepo, materialRepo, workshopRepo)
	deliveryUC := documents.NewDeliveryUseCase(txRunner, deliveryRepo, orderRepo, materialRepo, workshopRepo)
	transferUC := documents.NewTransferUseCase(txRunner, transferRepo, materialRepo, workshopRepo)
	orderUC := documents.NewOrderUseCase(txRunner, orderRepo, materialRepo)
	requirementsEngine := requirements.NewEngine(
		txRunner, bomRepo, stockRepo, productStockRepo,
		materialRepo, orderRepo, productRepo, workshopRepo,
	)

	// Puente con la tienda: opcional, solo lectura.
	var shopService *shopbridge.Service
	if cfg.Shopbridge.Enabled {
		client := shopbridge.NewClient(cfg.Shopbridge)
		shopService = shopbridge.NewService(client, cfg.Shopbridge.RefreshInterval, log)
		if err := shopService.Start(); err != nil {
			log.Fatal().Err(err).Msg("arranque del shopbridge")
		}
		defer shopService.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:   movementUC,
		DeliveryUC:   deliveryUC,
		TransferUC:   transferUC,
		OrderUC:      orderUC,
		Requirements: requirementsEngine,
		MaterialRepo: materialRepo,
		WorkshopRepo: workshopRepo,
		ProductRepo:  productRepo,
		BOMRepo:      bomRepo,
		Shopbridge:   shopService,
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
