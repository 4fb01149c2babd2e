package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para dashboard, reportes y
// conciliación. Agrega en SQL sobre el estado vigente; nunca escribe.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de agregación.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// CountProducts cuenta los productos activos del catálogo.
func (r *DashboardRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountProducts: %w", err)
	}
	return n, nil
}

// GetInventoryValue devuelve Σ stock × cost_price y Σ stock × sale_price de
// todo el inventario, incluidos los productos inactivos: su stock sigue en
// bodega y vale dinero. COALESCE devuelve cero si no hay variaciones.
func (r *DashboardRepo) GetInventoryValue(ctx context.Context) (costTotal, saleTotal decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(v.stock * p.cost_price), 0) AS cost_total,
	    COALESCE(SUM(v.stock * p.sale_price), 0) AS sale_total
	FROM product_variations v
	JOIN products p ON p.id = v.product_id`

	err = r.pool.QueryRow(ctx, query).Scan(&costTotal, &saleTotal)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("dashboard.GetInventoryValue: %w", err)
	}
	return costTotal, saleTotal, nil
}

// CountLowStock cuenta los productos cuyo stock total está en o bajo su stock
// mínimo. Cubre todos los productos, activos o no y sin importar is_critical;
// el feed operativo (GetCriticalProducts) es el que acota a críticos activos.
func (r *DashboardRepo) CountLowStock(ctx context.Context) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM products p
	WHERE COALESCE((SELECT SUM(v.stock) FROM product_variations v WHERE v.product_id = p.id), 0)
	      <= p.min_stock_level`

	var n int
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountLowStock: %w", err)
	}
	return n, nil
}

// GetCategoryStocks agrupa stock por categoría, omitiendo las de stock cero.
func (r *DashboardRepo) GetCategoryStocks(ctx context.Context) ([]repository.CategoryStockResult, error) {
	const query = `
	SELECT
	    c.id            AS category_id,
	    c.name          AS category_name,
	    SUM(v.stock)    AS total_stock
	FROM categories c
	JOIN products p            ON p.category_id = c.id AND p.active
	JOIN product_variations v  ON v.product_id  = p.id
	GROUP BY c.id, c.name
	HAVING SUM(v.stock) > 0
	ORDER BY total_stock DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetCategoryStocks: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStockResult
	for rows.Next() {
		var row repository.CategoryStockResult
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.TotalStock); err != nil {
			return nil, fmt.Errorf("dashboard.GetCategoryStocks scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetRecentMovements devuelve los últimos `limit` movimientos del tipo dado,
// descendente por id (orden causal del log).
func (r *DashboardRepo) GetRecentMovements(ctx context.Context, kind string, limit int) ([]repository.RecentMovementResult, error) {
	const query = `
	SELECT
	    m.id,
	    m.kind,
	    v.sku_variant,
	    p.name          AS product_name,
	    m.quantity,
	    m.unit_cost,
	    m.supplier,
	    m.destination,
	    m.actor,
	    m.created_at
	FROM movements m
	JOIN product_variations v ON v.id = m.variation_id
	JOIN products p           ON p.id = v.product_id
	WHERE m.kind = $1
	ORDER BY m.id DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetRecentMovements: %w", err)
	}
	defer rows.Close()

	var results []repository.RecentMovementResult
	for rows.Next() {
		var row repository.RecentMovementResult
		if err := rows.Scan(
			&row.MovementID,
			&row.Kind,
			&row.SKUVariant,
			&row.ProductName,
			&row.Quantity,
			&row.UnitCost,
			&row.Supplier,
			&row.Destination,
			&row.Actor,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("dashboard.GetRecentMovements scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMovementTotals totaliza los movimientos del tipo dado en [from, to].
// Las entradas se valoran a su unit_cost registrado; las salidas al precio de
// venta vigente del producto.
func (r *DashboardRepo) GetMovementTotals(ctx context.Context, kind string, from, to time.Time) (repository.MovementTotalsResult, error) {
	const query = `
	SELECT
	    COUNT(*)                      AS movement_count,
	    COALESCE(SUM(m.quantity), 0)  AS total_quantity,
	    COALESCE(SUM(
	        CASE WHEN m.kind = $4
	             THEN m.quantity * m.unit_cost
	             ELSE m.quantity * p.sale_price
	        END), 0)                  AS total_value
	FROM movements m
	JOIN product_variations v ON v.id = m.variation_id
	JOIN products p           ON p.id = v.product_id
	WHERE m.kind = $1
	  AND m.created_at BETWEEN $2 AND $3`

	var result repository.MovementTotalsResult
	err := r.pool.QueryRow(ctx, query, kind, from, to, entity.MovementKindArrival).
		Scan(&result.Count, &result.TotalQuantity, &result.TotalValue)
	if err != nil {
		return repository.MovementTotalsResult{}, fmt.Errorf("dashboard.GetMovementTotals: %w", err)
	}
	return result, nil
}

// GetCriticalProducts lista los productos is_critical y activos con su stock
// total actual, para el feed operativo de alertas.
func (r *DashboardRepo) GetCriticalProducts(ctx context.Context) ([]repository.CriticalProductResult, error) {
	const query = `
	SELECT
	    p.id      AS product_id,
	    p.sku,
	    p.name,
	    COALESCE((SELECT SUM(v.stock) FROM product_variations v WHERE v.product_id = p.id), 0) AS total_stock,
	    p.min_stock_level,
	    p.daily_usage_rate
	FROM products p
	WHERE p.is_critical AND p.active
	ORDER BY p.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetCriticalProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.CriticalProductResult
	for rows.Next() {
		var row repository.CriticalProductResult
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.Name,
			&row.TotalStock,
			&row.MinStockLevel,
			&row.DailyUsageRate,
		); err != nil {
			return nil, fmt.Errorf("dashboard.GetCriticalProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Reconcile recomputa Σ entradas − Σ salidas por variación desde el log y
// devuelve las variaciones que divergen de su contador almacenado. En
// operación normal no devuelve filas.
func (r *DashboardRepo) Reconcile(ctx context.Context) ([]repository.ReconciliationRow, error) {
	const query = `
	SELECT
	    v.id           AS variation_id,
	    v.sku_variant,
	    v.stock        AS stored_stock,
	    COALESCE(SUM(
	        CASE WHEN m.kind = $1 THEN m.quantity
	             WHEN m.kind = $2 THEN -m.quantity
	             ELSE 0
	        END), 0)   AS computed_stock
	FROM product_variations v
	LEFT JOIN movements m ON m.variation_id = v.id
	GROUP BY v.id, v.sku_variant, v.stock
	HAVING v.stock <> COALESCE(SUM(
	    CASE WHEN m.kind = $1 THEN m.quantity
	         WHEN m.kind = $2 THEN -m.quantity
	         ELSE 0
	    END), 0)
	ORDER BY v.sku_variant`

	rows, err := r.pool.Query(ctx, query, entity.MovementKindArrival, entity.MovementKindDispatch)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Reconcile: %w", err)
	}
	defer rows.Close()

	var results []repository.ReconciliationRow
	for rows.Next() {
		var row repository.ReconciliationRow
		if err := rows.Scan(&row.VariationID, &row.SKUVariant, &row.StoredStock, &row.ComputedStock); err != nil {
			return nil, fmt.Errorf("dashboard.Reconcile scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetValuationRows filas del reporte de valoración, ordenadas por nombre.
func (r *DashboardRepo) GetValuationRows(ctx context.Context) ([]repository.ValuationRowResult, error) {
	const query = `
	SELECT
	    p.sku,
	    p.name,
	    COALESCE(SUM(v.stock), 0)                AS total_stock,
	    p.cost_price,
	    p.sale_price,
	    COALESCE(SUM(v.stock), 0) * p.cost_price AS cost_value,
	    COALESCE(SUM(v.stock), 0) * p.sale_price AS sale_value
	FROM products p
	LEFT JOIN product_variations v ON v.product_id = p.id
	WHERE p.active
	GROUP BY p.id, p.sku, p.name, p.cost_price, p.sale_price
	ORDER BY p.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetValuationRows: %w", err)
	}
	defer rows.Close()

	var results []repository.ValuationRowResult
	for rows.Next() {
		var row repository.ValuationRowResult
		if err := rows.Scan(
			&row.SKU,
			&row.Name,
			&row.TotalStock,
			&row.CostPrice,
			&row.SalePrice,
			&row.CostValue,
			&row.SaleValue,
		); err != nil {
			return nil, fmt.Errorf("dashboard.GetValuationRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
