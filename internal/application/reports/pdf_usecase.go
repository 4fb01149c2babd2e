// Package reports genera el reporte de valoración de inventario en PDF.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// ValuationReport datos del reporte de valoración listos para renderizar.
type ValuationReport struct {
	GeneratedAt time.Time
	Rows        []repository.ValuationRowResult
	TotalCost   decimal.Decimal
	TotalSale   decimal.Decimal
}

// ValuationPDFGenerator renderiza el reporte de valoración a PDF.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, report *ValuationReport) ([]byte, error)
}

// PDFUseCase arma el reporte de valoración y lo renderiza a PDF.
type PDFUseCase struct {
	repo      repository.DashboardRepository
	generator ValuationPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(repo repository.DashboardRepository, generator ValuationPDFGenerator) *PDFUseCase {
	return &PDFUseCase{repo: repo, generator: generator}
}

// DownloadValuationPDF genera el PDF de valoración del inventario completo.
// Retorna (pdfBytes, filename, nil) si todo sale bien.
func (uc *PDFUseCase) DownloadValuationPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	rows, err := uc.repo.GetValuationRows(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: filas de valoración: %w", err)
	}
	costTotal, saleTotal, err := uc.repo.GetInventoryValue(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: totales de inventario: %w", err)
	}

	now := time.Now()
	report := &ValuationReport{
		GeneratedAt: now,
		Rows:        rows,
		TotalCost:   costTotal,
		TotalSale:   saleTotal,
	}
	pdfBytes, err = uc.generator.GenerateValuationPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("valoracion_inventario_%s.pdf", now.Format("2006-01-02"))
	return pdfBytes, filename, nil
}
