// Package alert clasifica productos en niveles de riesgo de stock para el
// semáforo del dashboard y el feed operativo de alertas.
package alert

import "github.com/shopspring/decimal"

// Status es el nivel de riesgo de stock de un producto.
type Status string

// Niveles en orden de prioridad descendente.
const (
	StatusOutOfStock Status = "OUT_OF_STOCK"
	StatusCritical   Status = "CRITICAL"
	StatusLow        Status = "LOW"
	StatusOK         Status = "OK"
)

// lowStockMargin: margen del 20% sobre el stock mínimo para el nivel LOW.
var lowStockMargin = decimal.RequireFromString("1.2")

// Rank devuelve el orden de prioridad para listados de alertas:
// OUT_OF_STOCK(0) < CRITICAL(1) < LOW(2) < OK(3). Los dashboards ordenan
// ascendente por este valor.
func (s Status) Rank() int {
	switch s {
	case StatusOutOfStock:
		return 0
	case StatusCritical:
		return 1
	case StatusLow:
		return 2
	default:
		return 3
	}
}

// Classify evalúa (stock, stock_mínimo) sin estado:
//
//  1. stock <= 0            -> OUT_OF_STOCK
//  2. stock <= min          -> CRITICAL
//  3. stock <= min × 1.2    -> LOW
//  4. resto                 -> OK
func Classify(stock int64, minStockLevel decimal.Decimal) Status {
	if stock <= 0 {
		return StatusOutOfStock
	}
	s := decimal.NewFromInt(stock)
	if s.LessThanOrEqual(minStockLevel) {
		return StatusCritical
	}
	if s.LessThanOrEqual(minStockLevel.Mul(lowStockMargin)) {
		return StatusLow
	}
	return StatusOK
}
