package ledger

import (
	"time"

	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// HistoryUseCase lectura del historial de movimientos de una variación.
// Solo lee: el log es append-only y aquí no se toca ningún contador.
type HistoryUseCase struct {
	movements  repository.MovementRepository
	variations repository.VariationRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movements repository.MovementRepository, variations repository.VariationRepository) *HistoryUseCase {
	return &HistoryUseCase{movements: movements, variations: variations}
}

// ListByVariation devuelve el historial de la variación, descendente por id.
// from/to acotan por fecha si no son nil.
func (uc *HistoryUseCase) ListByVariation(variationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	v, err := uc.variations.Get(variationID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movements.ListByVariation(variationID, from, to, limit, offset)
}
