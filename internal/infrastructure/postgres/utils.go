package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkurvas/almacen-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isLockNotAvailable verifica si un error es un lock_timeout vencido (55P03).
func isLockNotAvailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "55P03" // lock_not_available
	}
	return strings.Contains(err.Error(), "55P03")
}

// isDeadlockDetected verifica si PostgreSQL abortó la transacción como víctima
// de resolución de deadlock (40P01).
func isDeadlockDetected(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40P01" // deadlock_detected
	}
	return strings.Contains(err.Error(), "40P01")
}

// translateLockError convierte las fallas de concurrencia recuperables
// (lock_timeout vencido 55P03, víctima de deadlock 40P01) en domain.ErrBusy,
// para que el llamador reintente el comando completo. Cualquier otro error
// pasa intacto.
func translateLockError(err error) error {
	if err == nil {
		return nil
	}
	if isLockNotAvailable(err) || isDeadlockDetected(err) {
		return domain.ErrBusy
	}
	return err
}
