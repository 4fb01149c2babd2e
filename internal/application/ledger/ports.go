package ledger

import (
	"context"

	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Es lo que garantiza que mutar el
// contador de stock y anexar el registro de movimiento sean una sola unidad
// atómica: o ambos quedan, o ninguno. Nunca "descontar ahora, registrar después".
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		varRepo repository.VariationRepository,
		productRepo repository.ProductRepository,
	) error) error
}
