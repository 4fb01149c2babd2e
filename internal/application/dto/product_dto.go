package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	CategoryID     string          `json:"category_id,omitempty"`
	UnitMeasure    string          `json:"unit_measure,omitempty"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
	IsCritical     bool            `json:"is_critical"`
	DailyUsageRate decimal.Decimal `json:"daily_usage_rate"`
}

// CreateVariationRequest body para POST /api/products/:id/variations.
// El stock inicial siempre es 0: solo el ledger escribe stock.
type CreateVariationRequest struct {
	SKUVariant string `json:"sku_variant"`
	Size       string `json:"size"`
	Color      string `json:"color"`
}

// VariationResponse variación con su stock actual.
type VariationResponse struct {
	ID         string `json:"id"`
	SKUVariant string `json:"sku_variant"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	Stock      int64  `json:"stock"`
}

// ProductDetailResponse ficha del producto: catálogo + cifras derivadas en
// lectura (total, valoración, autonomía, semáforo) + variaciones.
type ProductDetailResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	CategoryID     string          `json:"category_id,omitempty"`
	UnitMeasure    string          `json:"unit_measure,omitempty"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
	IsCritical     bool            `json:"is_critical"`
	DailyUsageRate decimal.Decimal `json:"daily_usage_rate"`
	Active         bool            `json:"active"`

	TotalStock    int64               `json:"total_stock"`
	NetProfit     decimal.Decimal     `json:"net_profit"`
	DaysRemaining decimal.Decimal     `json:"estimated_days_remaining"`
	StockStatus   string              `json:"stock_status"`
	CostValue     decimal.Decimal     `json:"cost_value"`
	SaleValue     decimal.Decimal     `json:"sale_value"`
	Variations    []VariationResponse `json:"variations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductListItemResponse fila del listado maestro.
type ProductListItemResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	CategoryID  string `json:"category_id,omitempty"`
	TotalStock  int64  `json:"total_stock"`
	StockStatus string `json:"stock_status"`
	IsCritical  bool   `json:"is_critical"`
	Active      bool   `json:"active"`
}
