// Package ledger implementa el motor del libro de inventario: el único punto
// de entrada de mutación de stock de todo el sistema. Cada comando se ejecuta
// como una transacción serializable sobre la(s) variación(es) afectada(s):
// leer el stock con lock de fila, validar, escribir el nuevo contador y anexar
// el registro de movimiento, sin estado intermedio observable para otras
// transacciones. Dos despachos concurrentes sobre la misma variación quedan
// linealizados: el segundo reevalúa stock >= cantidad contra el valor ya
// commiteado por el primero, nunca contra una lectura vieja.
package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/costing"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// UseCase es el StockLedger: aplica entradas, salidas y lotes de forma
// transaccional. La política de costeo es inyectable; por defecto LastPrice.
type UseCase struct {
	txRunner TxRunner
	policy   costing.Policy
}

// NewUseCase construye el ledger. policy nil usa la política último precio.
func NewUseCase(txRunner TxRunner, policy costing.Policy) *UseCase {
	if policy == nil {
		policy = costing.LastPrice{}
	}
	return &UseCase{txRunner: txRunner, policy: policy}
}

// ArrivalInput comando de entrada de almacén.
type ArrivalInput struct {
	VariationID string
	Quantity    int64
	UnitCost    decimal.Decimal
	Supplier    string
	Actor       string
}

// DispatchInput comando de salida operativa.
type DispatchInput struct {
	VariationID string
	Quantity    int64
	Destination string
	Actor       string
}

// BatchLine una línea de un lote multi-ítem. Kind decide qué campos aplican:
// UnitCost/Supplier en entradas, Destination en salidas.
type BatchLine struct {
	Kind        string
	VariationID string
	Quantity    int64
	UnitCost    decimal.Decimal
	Supplier    string
	Destination string
}

// ApplyArrival incrementa el stock de la variación, fija el costo del producto
// según la política de costeo y anexa el registro ARRIVAL, todo en una
// transacción. Un comando rechazado no deja ningún efecto ni registro.
func (uc *UseCase) ApplyArrival(ctx context.Context, in ArrivalInput) (*entity.Movement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidCost
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		varRepo repository.VariationRepository,
		productRepo repository.ProductRepository,
	) error {
		// Lock de fila sobre la variación: serializa comandos concurrentes
		v, err := varRepo.GetForUpdate(in.VariationID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetByID(v.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newCost := uc.policy.CostOnArrival(v.Stock, product.CostPrice, in.Quantity, in.UnitCost)
		if err := productRepo.UpdateCostPrice(product.ID, newCost); err != nil {
			return err
		}
		if err := varRepo.UpdateStock(v.ID, v.Stock+in.Quantity); err != nil {
			return err
		}

		mov = &entity.Movement{
			Kind:        entity.MovementKindArrival,
			VariationID: v.ID,
			Quantity:    in.Quantity,
			UnitCost:    in.UnitCost,
			Supplier:    in.Supplier,
			Actor:       in.Actor,
			CreatedAt:   time.Now(),
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyDispatch decrementa el stock de la variación y anexa el registro
// DISPATCH en una transacción. Si el stock actual es menor a la cantidad
// solicitada falla con ErrInsufficientStock: sin decremento parcial, sin
// registro, sin recorte silencioso de la cantidad.
func (uc *UseCase) ApplyDispatch(ctx context.Context, in DispatchInput) (*entity.Movement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		varRepo repository.VariationRepository,
		_ repository.ProductRepository,
	) error {
		v, err := varRepo.GetForUpdate(in.VariationID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if v.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := varRepo.UpdateStock(v.ID, v.Stock-in.Quantity); err != nil {
			return err
		}

		mov = &entity.Movement{
			Kind:        entity.MovementKindDispatch,
			VariationID: v.ID,
			Quantity:    in.Quantity,
			Destination: in.Destination,
			Actor:       in.Actor,
			CreatedAt:   time.Now(),
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyBatch aplica un lote multi-línea todo-o-nada: cada línea se valida
// contra el stock al inicio del lote más los efectos de las líneas anteriores
// del mismo lote. Si cualquier línea falla, la transacción completa se
// revierte y no queda ningún registro ni cambio de contador.
//
// Las variaciones afectadas se bloquean en orden estable de id antes de
// procesar líneas, para que dos lotes concurrentes no puedan abrazarse en un
// deadlock de orden de locks.
func (uc *UseCase) ApplyBatch(ctx context.Context, actor string, lines []BatchLine) ([]*entity.Movement, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	for _, l := range lines {
		switch l.Kind {
		case entity.MovementKindArrival:
			if l.Quantity <= 0 {
				return nil, domain.ErrInvalidQuantity
			}
			if l.UnitCost.IsNegative() {
				return nil, domain.ErrInvalidCost
			}
		case entity.MovementKindDispatch:
			if l.Quantity <= 0 {
				return nil, domain.ErrInvalidQuantity
			}
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	var movs []*entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		varRepo repository.VariationRepository,
		productRepo repository.ProductRepository,
	) error {
		ids := distinctVariationIDs(lines)
		locked := make(map[string]*entity.ProductVariation, len(ids))
		for _, id := range ids {
			v, err := varRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if v == nil {
				return domain.ErrNotFound
			}
			locked[id] = v
		}

		now := time.Now()
		for _, l := range lines {
			v := locked[l.VariationID]
			switch l.Kind {
			case entity.MovementKindArrival:
				product, err := productRepo.GetByID(v.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				newCost := uc.policy.CostOnArrival(v.Stock, product.CostPrice, l.Quantity, l.UnitCost)
				if err := productRepo.UpdateCostPrice(product.ID, newCost); err != nil {
					return err
				}
				v.Stock += l.Quantity
				mov := &entity.Movement{
					Kind:        entity.MovementKindArrival,
					VariationID: v.ID,
					Quantity:    l.Quantity,
					UnitCost:    l.UnitCost,
					Supplier:    l.Supplier,
					Actor:       actor,
					CreatedAt:   now,
				}
				if err := movRepo.Create(mov); err != nil {
					return err
				}
				movs = append(movs, mov)

			case entity.MovementKindDispatch:
				if v.Stock < l.Quantity {
					return domain.ErrInsufficientStock
				}
				v.Stock -= l.Quantity
				mov := &entity.Movement{
					Kind:        entity.MovementKindDispatch,
					VariationID: v.ID,
					Quantity:    l.Quantity,
					Destination: l.Destination,
					Actor:       actor,
					CreatedAt:   now,
				}
				if err := movRepo.Create(mov); err != nil {
					return err
				}
				movs = append(movs, mov)
			}
		}

		// Escribir el contador final una sola vez por variación
		for _, id := range ids {
			if err := varRepo.UpdateStock(id, locked[id].Stock); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movs, nil
}

// distinctVariationIDs devuelve los ids de variación del lote, únicos y en
// orden estable (el orden de lock).
func distinctVariationIDs(lines []BatchLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.VariationID]; ok {
			continue
		}
		seen[l.VariationID] = struct{}{}
		ids = append(ids, l.VariationID)
	}
	sort.Strings(ids)
	return ids
}
