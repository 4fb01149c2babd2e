package repository

import (
	"time"

	"github.com/dkurvas/almacen-api/internal/domain/entity"
)

// MovementRepository puerto del log de movimientos, append-only: solo hay
// Create (dentro de la transacción del ledger) y lecturas. No existen Update
// ni Delete; los registros son hechos inmutables.
type MovementRepository interface {
	// Create persiste el movimiento y asigna m.ID con la secuencia de la DB.
	Create(m *entity.Movement) error
	// ListByVariation devuelve el historial de una variación, descendente por
	// id (orden causal). from/to acotan por fecha si no son nil.
	ListByVariation(variationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
