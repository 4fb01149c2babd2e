package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/dkurvas/almacen-api/internal/application/analytics"
	"github.com/dkurvas/almacen-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del dashboard global.
type DashboardHandler struct {
	dashboard *appanalytics.DashboardUseCase
	alerts    *appanalytics.AlertUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appanalytics.DashboardUseCase, alerts *appanalytics.AlertUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, alerts: alerts}
}

// GetSummary devuelve los KPIs del dashboard global.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (totales de catálogo, inversión, valor de
// venta, utilidad proyectada, stock por categoría y feeds de actividad).
// No requiere parámetros; todo se calcula en el momento de la consulta.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}

// GetAlerts devuelve el feed operativo de alertas: productos críticos
// clasificados por semáforo, ordenados por urgencia.
// GET /api/dashboard/alerts
func (h *DashboardHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, err := h.alerts.GetCriticalAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"total":  len(alerts),
		"alerts": alerts,
	})
}
