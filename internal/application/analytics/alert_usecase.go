package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/dkurvas/almacen-api/internal/application/dto"
	"github.com/dkurvas/almacen-api/internal/domain/alert"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
	"github.com/dkurvas/almacen-api/internal/domain/valuation"
)

// AlertUseCase arma el feed operativo de alertas: solo productos marcados
// críticos y activos, clasificados por semáforo y ordenados por urgencia.
type AlertUseCase struct {
	repo repository.DashboardRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.DashboardRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// GetCriticalAlerts clasifica cada producto crítico y devuelve el feed
// ordenado por prioridad ascendente (OUT_OF_STOCK primero) y, a igual
// prioridad, por menor autonomía estimada.
func (uc *AlertUseCase) GetCriticalAlerts(ctx context.Context) ([]dto.AlertDTO, error) {
	rows, err := uc.repo.GetCriticalProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("alertas críticas: %w", err)
	}

	out := make([]dto.AlertDTO, 0, len(rows))
	for _, r := range rows {
		status := alert.Classify(r.TotalStock, r.MinStockLevel)
		out = append(out, dto.AlertDTO{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			Name:          r.Name,
			TotalStock:    r.TotalStock,
			MinStockLevel: r.MinStockLevel,
			Status:        string(status),
			DaysRemaining: valuation.EstimatedDaysRemaining(r.TotalStock, r.DailyUsageRate),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := alert.Status(out[i].Status).Rank(), alert.Status(out[j].Status).Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].DaysRemaining.LessThan(out[j].DaysRemaining)
	})
	return out, nil
}
