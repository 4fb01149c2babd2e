package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El ledger nunca los envuelve: se devuelven tal cual al caller para que la
// capa HTTP los mapee a códigos de estado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidQuantity    = errors.New("cantidad inválida: debe ser un entero positivo")
	ErrInvalidCost        = errors.New("costo unitario inválido: no puede ser negativo")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrBusy               = errors.New("recurso bloqueado por otra operación, reintente el comando completo")
	ErrEmptyBatch         = errors.New("el lote no contiene líneas")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
