// Package costing define la política de costeo aplicada en cada entrada de
// almacén. La política por defecto es "último precio": el costo del producto
// pasa a ser el costo unitario de la entrada más reciente. Es una
// simplificación deliberada heredada del sistema de origen, no una decisión
// contable; por eso la política es intercambiable sin tocar el contrato de
// concurrencia del ledger.
package costing

import "github.com/shopspring/decimal"

// Policy calcula el nuevo costo del producto maestro tras aceptar una entrada.
// currentStock es el stock de la variación antes de la entrada; currentCost el
// costo vigente del producto; qty y unitCost los de la entrada aceptada.
type Policy interface {
	CostOnArrival(currentStock int64, currentCost decimal.Decimal, qty int64, unitCost decimal.Decimal) decimal.Decimal
}

// LastPrice fija el costo del producto al costo unitario de la última entrada,
// sin ponderar por cantidades ni por stock previo.
type LastPrice struct{}

// CostOnArrival devuelve siempre el costo unitario de la entrada.
func (LastPrice) CostOnArrival(_ int64, _ decimal.Decimal, _ int64, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost
}

// WeightedAverage implementa costo promedio ponderado:
// NuevoCosto = ((StockActual × CostoActual) + (CantEntrada × CostoEntrada)) / (StockActual + CantEntrada)
type WeightedAverage struct{}

// CostOnArrival devuelve el promedio ponderado; cero si la suma de cantidades
// no es positiva.
func (WeightedAverage) CostOnArrival(currentStock int64, currentCost decimal.Decimal, qty int64, unitCost decimal.Decimal) decimal.Decimal {
	stock := decimal.NewFromInt(currentStock)
	entry := decimal.NewFromInt(qty)
	sum := stock.Add(entry)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(currentCost).Add(entry.Mul(unitCost))
	return num.Div(sum)
}
