package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: este adaptador no expone
// Update ni Delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste el movimiento. El ID lo asigna la secuencia de la tabla y
// queda escrito en m.ID; ese número da el orden causal del log.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (kind, variation_id, quantity, unit_cost, supplier, destination, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.Kind, m.VariationID, m.Quantity, m.UnitCost, m.Supplier, m.Destination, m.Actor, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByVariation lista el historial de una variación, descendente por id.
// from/to acotan por fecha si no son nil.
func (r *MovementRepo) ListByVariation(variationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, kind, variation_id, quantity, unit_cost, supplier, destination, actor, created_at
		FROM movements WHERE variation_id = $1`
	args := []any{variationID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by variation: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Kind, &m.VariationID, &m.Quantity, &m.UnitCost,
			&m.Supplier, &m.Destination, &m.Actor, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
