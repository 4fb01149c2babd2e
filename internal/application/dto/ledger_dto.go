package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyArrivalRequest body para POST /api/ledger/arrivals.
type ApplyArrivalRequest struct {
	VariationID string          `json:"variation_id"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Supplier    string          `json:"supplier,omitempty"`
}

// ApplyDispatchRequest body para POST /api/ledger/dispatches.
type ApplyDispatchRequest struct {
	VariationID string `json:"variation_id"`
	Quantity    int64  `json:"quantity"`
	Destination string `json:"destination,omitempty"`
}

// BatchLineRequest una línea de un lote. kind ∈ {ARRIVAL, DISPATCH}.
type BatchLineRequest struct {
	Kind        string          `json:"kind"`
	VariationID string          `json:"variation_id"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	Destination string          `json:"destination,omitempty"`
}

// ApplyBatchRequest body para POST /api/ledger/batch. Todo-o-nada.
type ApplyBatchRequest struct {
	Lines []BatchLineRequest `json:"lines"`
}

// MovementResponse un registro del libro, tal como se expone a los reportes.
type MovementResponse struct {
	ID          int64           `json:"id"`
	Kind        string          `json:"kind"`
	VariationID string          `json:"variation_id"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Actor       string          `json:"actor"`
	CreatedAt   time.Time       `json:"created_at"`
}
