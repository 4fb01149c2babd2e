package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

var _ repository.VariationRepository = (*VariationRepo)(nil)

// VariationRepo implementación de VariationRepository sobre PostgreSQL
// (usable con pool o tx).
type VariationRepo struct {
	q Querier
}

// NewVariationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariationRepository(q Querier) *VariationRepo {
	return &VariationRepo{q: q}
}

// Create persiste una variación nueva.
func (r *VariationRepo) Create(v *entity.ProductVariation) error {
	query := `
		INSERT INTO product_variations (id, product_id, sku_variant, size, color, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ProductID, v.SKUVariant, v.Size, v.Color, v.Stock, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create variation: %w", err)
	}
	return nil
}

// Get obtiene una variación por ID. Devuelve nil si no existe.
func (r *VariationRepo) Get(id string) (*entity.ProductVariation, error) {
	query := `
		SELECT id, product_id, sku_variant, size, color, stock, created_at, updated_at
		FROM product_variations WHERE id = $1`
	return r.scanOne(query, id, false)
}

// GetForUpdate obtiene la variación bloqueando su fila (SELECT FOR UPDATE).
// Si el lock no llega dentro del lock_timeout de la transacción devuelve
// domain.ErrBusy.
func (r *VariationRepo) GetForUpdate(id string) (*entity.ProductVariation, error) {
	query := `
		SELECT id, product_id, sku_variant, size, color, stock, created_at, updated_at
		FROM product_variations WHERE id = $1
		FOR UPDATE`
	return r.scanOne(query, id, true)
}

func (r *VariationRepo) scanOne(query, id string, forUpdate bool) (*entity.ProductVariation, error) {
	var v entity.ProductVariation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ProductID, &v.SKUVariant, &v.Size, &v.Color, &v.Stock, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if forUpdate && isLockNotAvailable(err) {
			return nil, domain.ErrBusy
		}
		return nil, fmt.Errorf("get variation: %w", err)
	}
	return &v, nil
}

// UpdateStock escribe el nuevo contador. Se invoca bajo el lock de fila del
// ledger, nunca por fuera de él.
func (r *VariationRepo) UpdateStock(id string, stock int64) error {
	query := `UPDATE product_variations SET stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProduct lista las variaciones de un producto ordenadas por SKU.
func (r *VariationRepo) ListByProduct(productID string) ([]*entity.ProductVariation, error) {
	query := `
		SELECT id, product_id, sku_variant, size, color, stock, created_at, updated_at
		FROM product_variations WHERE product_id = $1
		ORDER BY sku_variant`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariation
	for rows.Next() {
		var v entity.ProductVariation
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKUVariant, &v.Size, &v.Color, &v.Stock, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
