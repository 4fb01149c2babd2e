package entity

import "time"

// ProductVariation es la unidad real de inventario (talla/color de un producto).
// Es la única entidad con cantidad viva y mutable; Stock nunca baja de cero y
// solo se escribe a través del ledger (StockLedger), jamás desde otro código.
//
// Invariante de conciliación: Stock == Σ entradas − Σ salidas de su historial
// de movimientos, en todo momento.
type ProductVariation struct {
	ID         string
	ProductID  string
	SKUVariant string // SKU único de la variante
	Size       string // ej: XL, 10mm, 1 Litro
	Color      string // ej: Rojo, Acero, Sintético
	Stock      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
