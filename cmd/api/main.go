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

	appanalytics "github.com/dkurvas/almacen-api/internal/application/analytics"
	"github.com/dkurvas/almacen-api/internal/application/auth"
	"github.com/dkurvas/almacen-api/internal/application/ledger"
	"github.com/dkurvas/almacen-api/internal/application/reports"
	"github.com/dkurvas/almacen-api/internal/application/usecase"
	infrapdf "github.com/dkurvas/almacen-api/internal/infrastructure/pdf"
	"github.com/dkurvas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/dkurvas/almacen-api/internal/interfaces/http"
	"github.com/dkurvas/almacen-api/pkg/config"
	"github.com/dkurvas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	}).Component("api")
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variationRepo := postgres.NewVariationRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Ledger.LockTimeout)

	ledgerUC := ledger.NewUseCase(txRunner, nil) // política último precio
	historyUC := ledger.NewHistoryUseCase(movementRepo, variationRepo)
	productUC := usecase.NewProductUseCase(productRepo, variationRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)
	alertUC := appanalytics.NewAlertUseCase(dashboardRepo)
	reportUC := appanalytics.NewReportUseCase(dashboardRepo)

	// PDF: reporte de valoración de inventario
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	pdfUC := reports.NewPDFUseCase(dashboardRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		LedgerUC:    ledgerUC,
		HistoryUC:   historyUC,
		DashboardUC: dashboardUC,
		AlertUC:     alertUC,
		ReportUC:    reportUC,
		PDFUC:       pdfUC,
		JWTSecret:   cfg.JWT.Secret,
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
