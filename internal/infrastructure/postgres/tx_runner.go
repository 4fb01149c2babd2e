package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkurvas/almacen-api/internal/application/ledger"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
//
// Cada transacción arranca con SET LOCAL lock_timeout: si un comando no
// obtiene el lock de fila de su variación dentro del plazo, PostgreSQL
// devuelve 55P03 y el adaptador lo traduce a domain.ErrBusy (reintentable).
// Lo mismo aplica a 40P01: los lotes ordenan los locks de variaciones por id,
// pero las actualizaciones de costo toman locks de fila de producto en orden
// de línea, así que dos lotes concurrentes aún pueden caer en deadlock y la
// víctima debe reintentar el comando completo.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool y el lock_timeout por comando.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	varRepo repository.VariationRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, timeout); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	movRepo := NewMovementRepository(tx)
	varRepo := NewVariationRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, varRepo, productRepo); err != nil {
		return translateLockError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateLockError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
