package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary: los KPIs del
// dashboard global. Todo se calcula en lectura desde el registro de
// variaciones; ninguna de estas cifras se cachea ni se persiste.
type DashboardSummaryDTO struct {
	TotalProducts   int             `json:"total_products"`
	TotalCost       decimal.Decimal `json:"total_cost"`        // Σ stock × cost_price (inversión)
	TotalSalesValue decimal.Decimal `json:"total_sales_value"` // Σ stock × sale_price
	ProjectedProfit decimal.Decimal `json:"projected_profit"`  // venta − inversión
	LowStockCount   int             `json:"low_stock_count"`   // todos los productos en/bajo mínimo

	CategoryStocks   []CategoryStockDTO  `json:"category_stocks"` // datos del gráfico de dona
	RecentArrivals   []RecentMovementDTO `json:"recent_arrivals"`
	RecentDispatches []RecentMovementDTO `json:"recent_dispatches"`
}

// CategoryStockDTO stock total de una categoría (omitidas las de stock cero).
type CategoryStockDTO struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	TotalStock int64  `json:"total_stock"`
}

// RecentMovementDTO fila del feed de actividad reciente.
type RecentMovementDTO struct {
	MovementID  int64           `json:"movement_id"`
	Kind        string          `json:"kind"`
	SKUVariant  string          `json:"sku_variant"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Actor       string          `json:"actor"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AlertDTO producto del feed operativo de alertas (solo críticos y activos),
// ordenado por prioridad ascendente (OUT_OF_STOCK primero).
type AlertDTO struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	TotalStock    int64           `json:"total_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	Status        string          `json:"status"`
	DaysRemaining decimal.Decimal `json:"estimated_days_remaining"`
}
