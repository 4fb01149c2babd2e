package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/dkurvas/almacen-api/internal/application/dto"
	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// ReportUseCase genera los reportes por intervalo y el diagnóstico de
// conciliación contador-vs-historial.
type ReportUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewReportUseCase construye el caso de uso. El reloj es inyectable para que
// los tests fijen "hoy".
func NewReportUseCase(repo repository.DashboardRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo, now: time.Now}
}

// ResolvePeriod traduce un período nominal a un intervalo [from, to] concreto:
//
//	daily   → hoy, de 00:00:00 a 23:59:59.999999999
//	weekly  → los últimos 7 días hasta ahora
//	monthly → del día 1 del mes en curso hasta ahora
//	custom  → from/to en RFC 3339, ambos obligatorios y from ≤ to
//
// Período vacío equivale a daily.
func (uc *ReportUseCase) ResolvePeriod(period, fromRaw, toRaw string) (string, time.Time, time.Time, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "", dto.PeriodDaily:
		return dto.PeriodDaily, todayStart, todayStart.Add(24*time.Hour - time.Nanosecond), nil
	case dto.PeriodWeekly:
		return dto.PeriodWeekly, todayStart.AddDate(0, 0, -6), now, nil
	case dto.PeriodMonthly:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return dto.PeriodMonthly, monthStart, now, nil
	case dto.PeriodCustom:
		if fromRaw == "" || toRaw == "" {
			return "", time.Time{}, time.Time{}, fmt.Errorf("%w: period=custom requiere from y to", domain.ErrInvalidInput)
		}
		from, err := time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			return "", time.Time{}, time.Time{}, fmt.Errorf("%w: from inválido: %v", domain.ErrInvalidInput, err)
		}
		to, err := time.Parse(time.RFC3339, toRaw)
		if err != nil {
			return "", time.Time{}, time.Time{}, fmt.Errorf("%w: to inválido: %v", domain.ErrInvalidInput, err)
		}
		if from.After(to) {
			return "", time.Time{}, time.Time{}, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
		}
		return dto.PeriodCustom, from, to, nil
	default:
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: período desconocido %q", domain.ErrInvalidInput, period)
	}
}

// GetMovementReport totaliza entradas y salidas del intervalo pedido.
func (uc *ReportUseCase) GetMovementReport(ctx context.Context, req dto.MovementReportRequest) (*dto.MovementReportDTO, error) {
	period, from, to, err := uc.ResolvePeriod(req.Period, req.From, req.To)
	if err != nil {
		return nil, err
	}

	arrivals, err := uc.repo.GetMovementTotals(ctx, entity.MovementKindArrival, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte de movimientos: entradas: %w", err)
	}
	dispatches, err := uc.repo.GetMovementTotals(ctx, entity.MovementKindDispatch, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte de movimientos: salidas: %w", err)
	}

	return &dto.MovementReportDTO{
		Period:        period,
		From:          from,
		To:            to,
		ArrivalCount:  arrivals.Count,
		ArrivalUnits:  arrivals.TotalQuantity,
		ArrivalValue:  arrivals.TotalValue,
		DispatchCount: dispatches.Count,
		DispatchUnits: dispatches.TotalQuantity,
		DispatchValue: dispatches.TotalValue,
	}, nil
}

// Reconcile recomputa el stock de cada variación desde su historial y lo
// compara con el contador almacenado. Un resultado sin discrepancias es el
// estado esperado; cualquier fila indica corrupción o escritura por fuera del
// ledger y amerita investigación manual.
func (uc *ReportUseCase) Reconcile(ctx context.Context) (*dto.ReconciliationReportDTO, error) {
	rows, err := uc.repo.Reconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("conciliación: %w", err)
	}

	out := make([]dto.ReconciliationRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReconciliationRowDTO{
			VariationID:   r.VariationID,
			SKUVariant:    r.SKUVariant,
			StoredStock:   r.StoredStock,
			ComputedStock: r.ComputedStock,
			Difference:    r.StoredStock - r.ComputedStock,
		})
	}
	return &dto.ReconciliationReportDTO{
		CheckedAt:     uc.now(),
		Consistent:    len(out) == 0,
		Discrepancies: out,
	}, nil
}
