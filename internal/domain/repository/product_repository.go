package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dkurvas/almacen-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia del catálogo de productos.
// UpdateCostPrice es la única escritura que ejecuta el ledger sobre productos
// (política de costeo en entradas); el resto es soporte de catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// List devuelve el catálogo ordenado por nombre. categoryID vacío = todas.
	List(categoryID string, onlyActive bool) ([]*entity.Product, error)
	// UpdateCostPrice fija el costo vigente del producto (se invoca dentro de
	// la transacción de una entrada, nunca fuera del ledger).
	UpdateCostPrice(id string, cost decimal.Decimal) error
}
