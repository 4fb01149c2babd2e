package repository

import "github.com/dkurvas/almacen-api/internal/domain/entity"

// VariationRepository puerto del registro de variaciones: el dueño del
// contador de stock vivo. Las escrituras de stock solo ocurren dentro de la
// transacción del ledger, tras un GetForUpdate sobre la misma fila.
type VariationRepository interface {
	Create(v *entity.ProductVariation) error
	Get(id string) (*entity.ProductVariation, error)
	// GetForUpdate obtiene la variación bloqueando su fila (SELECT FOR UPDATE).
	// Devuelve nil si no existe, domain.ErrBusy si el lock no se obtiene dentro
	// del lock_timeout de la transacción.
	GetForUpdate(id string) (*entity.ProductVariation, error)
	// UpdateStock escribe el nuevo contador. El valor ya fue validado >= 0 por
	// el ledger bajo el lock de fila.
	UpdateStock(id string, stock int64) error
	ListByProduct(productID string) ([]*entity.ProductVariation, error)
}
