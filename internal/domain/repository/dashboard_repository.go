package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryStockResult total de stock agrupado por categoría. Las categorías
// con stock cero se omiten en la consulta.
type CategoryStockResult struct {
	CategoryID   string
	CategoryName string
	TotalStock   int64
}

// RecentMovementResult fila del feed de actividad reciente, enriquecida con
// los datos de catálogo que necesita el dashboard.
type RecentMovementResult struct {
	MovementID  int64
	Kind        string
	SKUVariant  string
	ProductName string
	Quantity    int64
	UnitCost    decimal.Decimal // solo entradas
	Supplier    string          // solo entradas
	Destination string          // solo salidas
	Actor       string
	CreatedAt   time.Time
}

// MovementTotalsResult totales de un intervalo de reporte: cantidad de
// movimientos, unidades y valor monetario (qty × unit_cost en entradas,
// qty × sale_price del producto en salidas).
type MovementTotalsResult struct {
	Count         int
	TotalQuantity int64
	TotalValue    decimal.Decimal
}

// CriticalProductResult producto del feed operativo de alertas (is_critical y
// activo), con lo necesario para clasificar y calcular autonomía.
type CriticalProductResult struct {
	ProductID      string
	SKU            string
	Name           string
	TotalStock     int64
	MinStockLevel  decimal.Decimal
	DailyUsageRate decimal.Decimal
}

// ReconciliationRow variación cuyo contador almacenado no coincide con la
// suma de su historial de movimientos (Σ entradas − Σ salidas). En operación
// normal la consulta no devuelve filas.
type ReconciliationRow struct {
	VariationID   string
	SKUVariant    string
	StoredStock   int64
	ComputedStock int64
}

// ValuationRowResult fila del reporte de valoración de inventario.
type ValuationRowResult struct {
	SKU        string
	Name       string
	TotalStock int64
	CostPrice  decimal.Decimal
	SalePrice  decimal.Decimal
	CostValue  decimal.Decimal
	SaleValue  decimal.Decimal
}

// DashboardRepository consultas read-only de agregación para dashboard,
// reportes y conciliación. Las implementaciones no modifican datos y sirven
// una foto "al momento de la consulta": no bloquean a los escritores ni
// garantizan consistencia cruzada entre agregados.
type DashboardRepository interface {
	// CountProducts cuenta los productos activos del catálogo.
	CountProducts(ctx context.Context) (int, error)
	// GetInventoryValue devuelve Σ stock × cost_price y Σ stock × sale_price
	// sobre todas las variaciones (KPIs financieros de portafolio, calculados
	// en lectura, nunca cacheados).
	GetInventoryValue(ctx context.Context) (costTotal, saleTotal decimal.Decimal, err error)
	// CountLowStock cuenta los productos (todos, no solo críticos) cuyo stock
	// total está en o bajo su stock mínimo.
	CountLowStock(ctx context.Context) (int, error)
	// GetCategoryStocks agrupa stock por categoría omitiendo las de stock cero.
	GetCategoryStocks(ctx context.Context) ([]CategoryStockResult, error)
	// GetRecentMovements devuelve los últimos `limit` movimientos del tipo
	// dado, descendente por fecha.
	GetRecentMovements(ctx context.Context, kind string, limit int) ([]RecentMovementResult, error)
	// GetMovementTotals totaliza los movimientos del tipo dado en [from, to].
	GetMovementTotals(ctx context.Context, kind string, from, to time.Time) (MovementTotalsResult, error)
	// GetCriticalProducts lista los productos is_critical y activos con su
	// stock total actual.
	GetCriticalProducts(ctx context.Context) ([]CriticalProductResult, error)
	// Reconcile recomputa Σ entradas − Σ salidas por variación y devuelve las
	// que divergen del contador almacenado.
	Reconcile(ctx context.Context) ([]ReconciliationRow, error)
	// GetValuationRows filas del reporte de valoración, ordenadas por nombre.
	GetValuationRows(ctx context.Context) ([]ValuationRowResult, error)
}
