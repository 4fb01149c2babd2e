package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/dkurvas/almacen-api/internal/application/analytics"
	"github.com/dkurvas/almacen-api/internal/application/auth"
	"github.com/dkurvas/almacen-api/internal/application/ledger"
	"github.com/dkurvas/almacen-api/internal/application/reports"
	"github.com/dkurvas/almacen-api/internal/application/usecase"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	LedgerUC    *ledger.UseCase
	HistoryUC   *ledger.HistoryUseCase
	DashboardUC *appanalytics.DashboardUseCase
	AlertUC     *appanalytics.AlertUseCase
	ReportUC    *appanalytics.ReportUseCase
	PDFUC       *reports.PDFUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CategoryUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/variations", RequireRole(entity.RoleAdmin), productHandler.CreateVariation)

	categories := protected.Group("/categories")
	categories.Post("/", RequireRole(entity.RoleAdmin), productHandler.CreateCategory)
	categories.Get("/", productHandler.ListCategories)

	// Libro de movimientos (protegido; bodegueros y admins operan)
	ledgerGroup := protected.Group("/ledger", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.HistoryUC)
	ledgerGroup.Post("/arrivals", ledgerHandler.ApplyArrival)
	ledgerGroup.Post("/dispatches", ledgerHandler.ApplyDispatch)
	ledgerGroup.Post("/batch", ledgerHandler.ApplyBatch)
	ledgerGroup.Get("/variations/:id/movements", ledgerHandler.ListMovements)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.AlertUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/alerts", dashboardHandler.GetAlerts)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFUC)
	reportsGroup.Get("/movements", reportHandler.GetMovementReport)
	reportsGroup.Get("/reconciliation", reportHandler.Reconcile)
	reportsGroup.Get("/valuation.pdf", reportHandler.DownloadValuationPDF)
}
