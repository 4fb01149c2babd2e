// Package valuation contiene los cálculos derivados de valoración de
// inventario. Todo es puro y se evalúa en lectura sobre el estado actual del
// registro de variaciones: ningún total se materializa como campo propio, para
// no crear una segunda fuente de verdad que pueda divergir del ledger.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/dkurvas/almacen-api/internal/domain/entity"
)

// IndefiniteRunwayDays es el valor centinela que devuelve
// EstimatedDaysRemaining cuando hay stock pero no hay consumo medido
// (daily_usage_rate <= 0). Es una convención de política, NO un conteo real de
// días: los tests y los consumidores deben tratarlo como "duración indefinida".
const IndefiniteRunwayDays = 999

// TotalStock suma el stock físico de las variaciones de un producto.
func TotalStock(variations []*entity.ProductVariation) int64 {
	var total int64
	for _, v := range variations {
		total += v.Stock
	}
	return total
}

// NetProfit devuelve sale_price − cost_price del producto, o cero si alguno de
// los dos precios no está definido (no positivo).
func NetProfit(p *entity.Product) decimal.Decimal {
	if p.SalePrice.LessThanOrEqual(decimal.Zero) || p.CostPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.CostPrice)
}

// EstimatedDaysRemaining calcula los días operativos restantes según la tasa
// de consumo diario. Redondeado a un decimal.
//
//	stock <= 0           -> 0
//	rate  <= 0           -> IndefiniteRunwayDays (centinela)
//	resto                -> stock / rate
func EstimatedDaysRemaining(totalStock int64, dailyUsageRate decimal.Decimal) decimal.Decimal {
	if totalStock <= 0 {
		return decimal.Zero
	}
	if dailyUsageRate.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(IndefiniteRunwayDays)
	}
	return decimal.NewFromInt(totalStock).Div(dailyUsageRate).Round(1)
}

// StockValue devuelve el valor del stock de un producto a costo y a precio de
// venta (stock_total × precio correspondiente).
func StockValue(p *entity.Product, variations []*entity.ProductVariation) (cost, sale decimal.Decimal) {
	stock := decimal.NewFromInt(TotalStock(variations))
	return stock.Mul(p.CostPrice), stock.Mul(p.SalePrice)
}
