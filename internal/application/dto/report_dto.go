package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Períodos soportados por el reporte de movimientos.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodCustom  = "custom"
)

// MovementReportRequest query params de GET /api/reports/movements.
// from/to (RFC 3339) solo aplican cuando period=custom.
type MovementReportRequest struct {
	Period string `query:"period"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// MovementReportDTO totales de un intervalo: unidades y valor monetario por
// tipo de movimiento (entradas al costo unitario registrado, salidas al
// precio de venta vigente del producto).
type MovementReportDTO struct {
	Period string    `json:"period"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`

	ArrivalCount  int             `json:"arrival_count"`
	ArrivalUnits  int64           `json:"arrival_units"`
	ArrivalValue  decimal.Decimal `json:"arrival_value"`
	DispatchCount int             `json:"dispatch_count"`
	DispatchUnits int64           `json:"dispatch_units"`
	DispatchValue decimal.Decimal `json:"dispatch_value"`
}

// ReconciliationReportDTO resultado del diagnóstico de conciliación.
type ReconciliationReportDTO struct {
	CheckedAt     time.Time              `json:"checked_at"`
	Consistent    bool                   `json:"consistent"`
	Discrepancies []ReconciliationRowDTO `json:"discrepancies"`
}

// ReconciliationRowDTO variación cuyo contador difiere de su historial.
type ReconciliationRowDTO struct {
	VariationID   string `json:"variation_id"`
	SKUVariant    string `json:"sku_variant"`
	StoredStock   int64  `json:"stored_stock"`
	ComputedStock int64  `json:"computed_stock"`
	Difference    int64  `json:"difference"`
}
