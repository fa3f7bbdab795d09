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
	appanalytics "github.com/jhoicas/Inventario-hogar/internal/application/analytics"
	"github.com/jhoicas/Inventario-hogar/internal/application/history"
	"github.com/jhoicas/Inventario-hogar/internal/application/inventory"
	"github.com/jhoicas/Inventario-hogar/internal/application/usecase"
	"github.com/jhoicas/Inventario-hogar/internal/application/validation"
	infrapdf "github.com/jhoicas/Inventario-hogar/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-hogar/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-hogar/internal/interfaces/http"
	"github.com/jhoicas/Inventario-hogar/pkg/cache"
	"github.com/jhoicas/Inventario-hogar/pkg/config"
	"github.com/jhoicas/Inventario-hogar/pkg/logger"
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

	// Repositorios atados al pool (las mutaciones del libro abren sus propias tx vía TxRunner)
	locationRepo := postgres.NewLocationRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	entryRepo := postgres.NewInventoryEntryRepository(pool)
	historyRepo := postgres.NewMovementHistoryRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de lecturas del dashboard: opcional, la app funciona sin Redis
	var cacheClient cache.Client
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible; dashboard sin cache")
		} else {
			cacheClient = redisClient
		}
	}

	// Servicios de aplicación
	inventorySvc := inventory.NewService(
		txRunner, entryRepo, historyRepo, itemRepo, locationRepo,
		cfg.Inventory.HistoryAtomic, log.Component("inventory"),
	)
	registry := validation.NewRegistry()
	validator := validation.NewValidator(
		registry, itemRepo, locationRepo, entryRepo, historyRepo,
		log.Component("validation"),
	)
	historySvc := history.NewService(historyRepo, locationRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(
		analyticsRepo, cacheClient, cfg.Redis.SummaryTTL, log.Component("dashboard"),
	)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	pdfGenerator := infrapdf.NewLocationReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Hogar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LocationUC:  locationUC,
		ItemUC:      itemUC,
		CategoryUC:  categoryUC,
		InventorySv: inventorySvc,
		Validator:   validator,
		HistorySv:   historySvc,
		DashboardUC: dashboardUC,
		PDFGen:      pdfGenerator,
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
