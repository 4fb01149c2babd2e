package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, barcode, category_id, unit_measure,
	cost_price, sale_price, min_stock_level, is_critical, daily_usage_rate, active,
	created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, barcode, category_id, unit_measure,
			cost_price, sale_price, min_stock_level, is_critical, daily_usage_rate, active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	categoryID := (*string)(nil)
	if p.CategoryID != "" {
		categoryID = &p.CategoryID
	}
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Description, p.Barcode, categoryID, p.UnitMeasure,
		p.CostPrice, p.SalePrice, p.MinStockLevel, p.IsCritical, p.DailyUsageRate, p.Active,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtiene un producto por SKU. Devuelve nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(query, sku)
}

func (r *ProductRepo) scanOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Barcode, &categoryID, &p.UnitMeasure,
		&p.CostPrice, &p.SalePrice, &p.MinStockLevel, &p.IsCritical, &p.DailyUsageRate, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}

// List devuelve el catálogo ordenado por nombre. categoryID vacío = todas.
func (r *ProductRepo) List(categoryID string, onlyActive bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	pos := 1
	if categoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, categoryID)
		pos++
	}
	if onlyActive {
		query += " AND active"
	}
	query += " ORDER BY name"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var cID *string
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Barcode, &cID, &p.UnitMeasure,
			&p.CostPrice, &p.SalePrice, &p.MinStockLevel, &p.IsCritical, &p.DailyUsageRate, &p.Active,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if cID != nil {
			p.CategoryID = *cID
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateCostPrice fija el costo vigente del producto. Se invoca dentro de la
// transacción de una entrada del ledger.
func (r *ProductRepo) UpdateCostPrice(id string, cost decimal.Decimal) error {
	query := `UPDATE products SET cost_price = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, cost)
	if err != nil {
		return fmt.Errorf("update cost price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
