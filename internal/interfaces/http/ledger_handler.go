package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dkurvas/almacen-api/internal/application/dto"
	"github.com/dkurvas/almacen-api/internal/application/ledger"
	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
)

// LedgerHandler maneja los comandos del libro de inventario (protegido).
type LedgerHandler struct {
	uc      *ledger.UseCase
	history *ledger.HistoryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase, history *ledger.HistoryUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, history: history}
}

// ApplyArrival godoc
// @Summary      Registrar entrada de almacén
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyArrivalRequest  true  "variation_id, quantity, unit_cost, supplier"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ledger/arrivals [post]
func (h *LedgerHandler) ApplyArrival(c *fiber.Ctx) error {
	var in dto.ApplyArrivalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.ApplyArrival(c.Context(), ledger.ArrivalInput{
		VariationID: in.VariationID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Supplier:    in.Supplier,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ApplyDispatch godoc
// @Summary      Registrar despacho / salida operativa
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyDispatchRequest  true  "variation_id, quantity, destination"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ledger/dispatches [post]
func (h *LedgerHandler) ApplyDispatch(c *fiber.Ctx) error {
	var in dto.ApplyDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.ApplyDispatch(c.Context(), ledger.DispatchInput{
		VariationID: in.VariationID,
		Quantity:    in.Quantity,
		Destination: in.Destination,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ApplyBatch godoc
// @Summary      Aplicar lote de movimientos (todo-o-nada)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyBatchRequest  true  "lines"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ledger/batch [post]
func (h *LedgerHandler) ApplyBatch(c *fiber.Ctx) error {
	var in dto.ApplyBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]ledger.BatchLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.BatchLine{
			Kind:        l.Kind,
			VariationID: l.VariationID,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			Supplier:    l.Supplier,
			Destination: l.Destination,
		})
	}
	movs, err := h.uc.ApplyBatch(c.Context(), GetUserID(c), lines)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de una variación
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la variación"
// @Param        from    query  string  false  "RFC 3339"
// @Param        to      query  string  false  "RFC 3339"
// @Param        limit   query  int     false  "por defecto 20"
// @Param        offset  query  int     false  "por defecto 0"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/variations/{id}/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}

	movs, err := h.history.ListByVariation(c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// ledgerError mapea los errores de dominio del ledger a códigos HTTP.
// Busy es 503: el comando no se aplicó y el cliente puede reintentar tal cual.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser positiva"})
	case errors.Is(err, domain.ErrInvalidCost):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_COST", Message: "el costo unitario no puede ser negativo"})
	case errors.Is(err, domain.ErrEmptyBatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_BATCH", Message: "el lote no tiene líneas"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variación no encontrada"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrBusy):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BUSY", Message: "variación ocupada, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Kind:        m.Kind,
		VariationID: m.VariationID,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		Supplier:    m.Supplier,
		Destination: m.Destination,
		Actor:       m.Actor,
		CreatedAt:   m.CreatedAt,
	}
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
