package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/dkurvas/almacen-api/internal/application/analytics"
	"github.com/dkurvas/almacen-api/internal/application/dto"
	"github.com/dkurvas/almacen-api/internal/application/reports"
	"github.com/dkurvas/almacen-api/internal/domain"
)

// ReportHandler maneja reportes por intervalo, conciliación y PDF.
type ReportHandler struct {
	reports *appanalytics.ReportUseCase
	pdf     *reports.PDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *appanalytics.ReportUseCase, pdfUC *reports.PDFUseCase) *ReportHandler {
	return &ReportHandler{reports: reportUC, pdf: pdfUC}
}

// GetMovementReport godoc
// @Summary      Totales de movimientos por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "daily | weekly | monthly | custom (por defecto daily)"
// @Param        from    query  string  false  "RFC 3339, solo con period=custom"
// @Param        to      query  string  false  "RFC 3339, solo con period=custom"
// @Success      200  {object}  dto.MovementReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) GetMovementReport(c *fiber.Ctx) error {
	var req dto.MovementReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	report, err := h.reports.GetMovementReport(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

// Reconcile godoc
// @Summary      Conciliación contador vs historial
// @Description  Recomputa el stock de cada variación desde su log de
// movimientos y lo compara con el contador vivo. Sin discrepancias es el
// estado esperado.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationReportDTO
// @Router       /api/reports/reconciliation [get]
func (h *ReportHandler) Reconcile(c *fiber.Ctx) error {
	report, err := h.reports.Reconcile(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

// DownloadValuationPDF godoc
// @Summary      Descargar reporte de valoración en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/valuation.pdf [get]
func (h *ReportHandler) DownloadValuationPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadValuationPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
