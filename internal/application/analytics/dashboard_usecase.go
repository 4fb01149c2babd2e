// Package analytics contiene los casos de uso de lectura: dashboard global,
// reportes de movimientos por intervalo, feed de alertas y conciliación.
// Todos son rollups punto-en-el-tiempo sobre el estado actual del registro:
// no bloquean a los escritores y toleran servir una foto levemente desfasada.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dkurvas/almacen-api/internal/application/dto"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

const recentFeedSize = 5 // movimientos por feed en el dashboard

// DashboardUseCase arma el resumen global: KPIs financieros, alertas de stock
// bajo, stock por categoría y actividad reciente.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo:
//  1. CountProducts + CountLowStock  → KPIs de catálogo
//  2. GetInventoryValue              → inversión, valor de venta, utilidad
//  3. GetCategoryStocks              → gráfico de dona
//  4. GetRecentMovements(ARRIVAL)    → feed de entradas
//  5. GetRecentMovements(DISPATCH)   → feed de salidas
//
// Cada consulta es consistente consigo misma pero no entre sí: el resumen es
// una foto "al momento de la consulta", sin garantía cruzada entre agregados.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type kpisResult struct {
		products int
		lowStock int
		err      error
	}
	type valueResult struct {
		cost decimal.Decimal
		sale decimal.Decimal
		err  error
	}
	type catsResult struct {
		rows []repository.CategoryStockResult
		err  error
	}
	type feedResult struct {
		rows []repository.RecentMovementResult
		err  error
	}

	kpisCh := make(chan kpisResult, 1)
	valueCh := make(chan valueResult, 1)
	catsCh := make(chan catsResult, 1)
	arrCh := make(chan feedResult, 1)
	disCh := make(chan feedResult, 1)

	go func() {
		products, err := uc.repo.CountProducts(ctx)
		if err != nil {
			kpisCh <- kpisResult{err: err}
			return
		}
		lowStock, err := uc.repo.CountLowStock(ctx)
		kpisCh <- kpisResult{products: products, lowStock: lowStock, err: err}
	}()
	go func() {
		cost, sale, err := uc.repo.GetInventoryValue(ctx)
		valueCh <- valueResult{cost: cost, sale: sale, err: err}
	}()
	go func() {
		rows, err := uc.repo.GetCategoryStocks(ctx)
		catsCh <- catsResult{rows: rows, err: err}
	}()
	go func() {
		rows, err := uc.repo.GetRecentMovements(ctx, entity.MovementKindArrival, recentFeedSize)
		arrCh <- feedResult{rows: rows, err: err}
	}()
	go func() {
		rows, err := uc.repo.GetRecentMovements(ctx, entity.MovementKindDispatch, recentFeedSize)
		disCh <- feedResult{rows: rows, err: err}
	}()

	kpis := <-kpisCh
	value := <-valueCh
	cats := <-catsCh
	arrivals := <-arrCh
	dispatches := <-disCh

	if kpis.err != nil {
		return nil, fmt.Errorf("dashboard: KPIs de catálogo: %w", kpis.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor de inventario: %w", value.err)
	}
	if cats.err != nil {
		return nil, fmt.Errorf("dashboard: stock por categoría: %w", cats.err)
	}
	if arrivals.err != nil {
		return nil, fmt.Errorf("dashboard: entradas recientes: %w", arrivals.err)
	}
	if dispatches.err != nil {
		return nil, fmt.Errorf("dashboard: salidas recientes: %w", dispatches.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:    kpis.products,
		TotalCost:        value.cost,
		TotalSalesValue:  value.sale,
		ProjectedProfit:  value.sale.Sub(value.cost),
		LowStockCount:    kpis.lowStock,
		CategoryStocks:   toCategoryDTOs(cats.rows),
		RecentArrivals:   toRecentDTOs(arrivals.rows),
		RecentDispatches: toRecentDTOs(dispatches.rows),
	}, nil
}

func toCategoryDTOs(rows []repository.CategoryStockResult) []dto.CategoryStockDTO {
	out := make([]dto.CategoryStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryStockDTO{
			CategoryID: r.CategoryID,
			Name:       r.CategoryName,
			TotalStock: r.TotalStock,
		})
	}
	return out
}

func toRecentDTOs(rows []repository.RecentMovementResult) []dto.RecentMovementDTO {
	out := make([]dto.RecentMovementDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RecentMovementDTO{
			MovementID:  r.MovementID,
			Kind:        r.Kind,
			SKUVariant:  r.SKUVariant,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			UnitCost:    r.UnitCost,
			Supplier:    r.Supplier,
			Destination: r.Destination,
			Actor:       r.Actor,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}
