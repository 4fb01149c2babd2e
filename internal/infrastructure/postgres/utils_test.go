package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dkurvas/almacen-api/internal/domain"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// Tanto el lock_timeout vencido como la víctima de deadlock deben salir como
// ErrBusy: en ambos casos el remedio es reintentar el comando completo.
func TestTranslateLockError_TimeoutYDeadlockSonBusy(t *testing.T) {
	assert.ErrorIs(t, translateLockError(pgError("55P03")), domain.ErrBusy)
	assert.ErrorIs(t, translateLockError(pgError("40P01")), domain.ErrBusy)

	// El código debe detectarse aunque el repo lo haya envuelto con %w
	wrapped := fmt.Errorf("update product cost: %w", pgError("40P01"))
	assert.ErrorIs(t, translateLockError(wrapped), domain.ErrBusy)
}

func TestTranslateLockError_OtrosErroresPasanIntactos(t *testing.T) {
	assert.NoError(t, translateLockError(nil))

	plain := errors.New("columna inexistente")
	assert.Equal(t, plain, translateLockError(plain))

	// Una violación de único no es reintentable: no debe volverse ErrBusy
	unique := pgError("23505")
	assert.Equal(t, unique, translateLockError(unique))
	assert.True(t, isUniqueViolation(unique))
}
