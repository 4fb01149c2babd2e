// Package usecase contiene los casos de uso de catálogo: productos,
// variaciones y categorías. El stock y el costo NO se editan aquí; esos
// campos solo los escribe el ledger de movimientos.
package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkurvas/almacen-api/internal/application/dto"
	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/alert"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
	"github.com/dkurvas/almacen-api/internal/domain/valuation"
)

// ProductUseCase casos de uso del catálogo de productos y variaciones.
type ProductUseCase struct {
	products   repository.ProductRepository
	variations repository.VariationRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, variations repository.VariationRepository) *ProductUseCase {
	return &ProductUseCase{products: products, variations: variations}
}

// Create crea un producto. SKU único; precios, mínimo y tasa de consumo no
// negativos. El stock inicia implícitamente en 0 (sin variaciones).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductDetailResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidCost
	}
	if in.MinStockLevel.IsNegative() || in.DailyUsageRate.IsNegative() {
		return nil, fmt.Errorf("%w: min_stock_level y daily_usage_rate deben ser >= 0", domain.ErrInvalidInput)
	}

	existing, err := uc.products.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		Description:    in.Description,
		Barcode:        in.Barcode,
		CategoryID:     in.CategoryID,
		UnitMeasure:    in.UnitMeasure,
		CostPrice:      in.CostPrice,
		SalePrice:      in.SalePrice,
		MinStockLevel:  in.MinStockLevel,
		IsCritical:     in.IsCritical,
		DailyUsageRate: in.DailyUsageRate,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return uc.toDetail(product, nil), nil
}

// CreateVariation agrega una variación al producto con stock 0. El stock solo
// cambia después vía movimientos del ledger.
func (uc *ProductUseCase) CreateVariation(productID string, in dto.CreateVariationRequest) (*dto.VariationResponse, error) {
	if in.SKUVariant == "" {
		return nil, fmt.Errorf("%w: sku_variant es obligatorio", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	v := &entity.ProductVariation{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		SKUVariant: in.SKUVariant,
		Size:       in.Size,
		Color:      in.Color,
		Stock:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.variations.Create(v); err != nil {
		return nil, err
	}
	return toVariationResponse(v), nil
}

// GetDetail devuelve la ficha del producto con sus cifras derivadas (total,
// valoración, autonomía, semáforo) calculadas en el momento de la lectura.
func (uc *ProductUseCase) GetDetail(id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	variations, err := uc.variations.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	return uc.toDetail(product, variations), nil
}

// List devuelve el catálogo con total de stock y semáforo por producto.
// categoryID vacío lista todas las categorías.
func (uc *ProductUseCase) List(categoryID string, onlyActive bool) ([]dto.ProductListItemResponse, error) {
	list, err := uc.products.List(categoryID, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductListItemResponse, 0, len(list))
	for _, p := range list {
		variations, err := uc.variations.ListByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		total := valuation.TotalStock(variations)
		items = append(items, dto.ProductListItemResponse{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			CategoryID:  p.CategoryID,
			TotalStock:  total,
			StockStatus: string(alert.Classify(total, p.MinStockLevel)),
			IsCritical:  p.IsCritical,
			Active:      p.Active,
		})
	}
	return items, nil
}

func (uc *ProductUseCase) toDetail(p *entity.Product, variations []*entity.ProductVariation) *dto.ProductDetailResponse {
	total := valuation.TotalStock(variations)
	costValue, saleValue := valuation.StockValue(p, variations)

	vs := make([]dto.VariationResponse, 0, len(variations))
	for _, v := range variations {
		vs = append(vs, *toVariationResponse(v))
	}
	return &dto.ProductDetailResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Barcode:        p.Barcode,
		CategoryID:     p.CategoryID,
		UnitMeasure:    p.UnitMeasure,
		CostPrice:      p.CostPrice,
		SalePrice:      p.SalePrice,
		MinStockLevel:  p.MinStockLevel,
		IsCritical:     p.IsCritical,
		DailyUsageRate: p.DailyUsageRate,
		Active:         p.Active,
		TotalStock:     total,
		NetProfit:      valuation.NetProfit(p),
		DaysRemaining:  valuation.EstimatedDaysRemaining(total, p.DailyUsageRate),
		StockStatus:    string(alert.Classify(total, p.MinStockLevel)),
		CostValue:      costValue,
		SaleValue:      saleValue,
		Variations:     vs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toVariationResponse(v *entity.ProductVariation) *dto.VariationResponse {
	return &dto.VariationResponse{
		ID:         v.ID,
		SKUVariant: v.SKUVariant,
		Size:       v.Size,
		Color:      v.Color,
		Stock:      v.Stock,
	}
}
