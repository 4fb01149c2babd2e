package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementKindArrival  = "ARRIVAL"  // entrada de almacén
	MovementKindDispatch = "DISPATCH" // despacho / salida operativa
)

// Movement es un hecho inmutable del libro de movimientos: una entrada o una
// salida ya aceptada. Nunca se actualiza ni se borra después de creado; es la
// pista de auditoría desde la que el stock de cada variación es reconstruible.
//
// El ID lo asigna la base de datos (secuencia) y da el orden causal del log.
// UnitCost y Supplier solo aplican a entradas; Destination solo a salidas.
type Movement struct {
	ID          int64
	Kind        string
	VariationID string
	Quantity    int64 // siempre positivo; el signo lo da Kind
	UnitCost    decimal.Decimal
	Supplier    string
	Destination string
	Actor       string // UserID que ejecutó el comando
	CreatedAt   time.Time
}

// IsArrival indica si el movimiento es una entrada.
func (m *Movement) IsArrival() bool { return m.Kind == MovementKindArrival }

// TotalValue devuelve el valor monetario del movimiento: qty × unit_cost para
// entradas (inversión); para salidas el valor se calcula con el precio de
// venta del producto en la capa de reportes, no aquí.
func (m *Movement) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(m.Quantity).Mul(m.UnitCost)
}
