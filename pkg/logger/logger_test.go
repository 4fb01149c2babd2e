package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFrom(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, levelFrom("debug"))
	assert.Equal(t, zerolog.WarnLevel, levelFrom("warn"))
	assert.Equal(t, zerolog.ErrorLevel, levelFrom("error"))

	// Vacío o desconocido caen en info
	assert.Equal(t, zerolog.InfoLevel, levelFrom(""))
	assert.Equal(t, zerolog.InfoLevel, levelFrom("verbose"))
}

func TestComponent_AgregaCampoFijo(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zl: zerolog.New(&buf)}

	l.Component("reconcile").Info().Msg("conciliación OK")

	out := buf.String()
	assert.Contains(t, out, `"component":"reconcile"`)
	assert.Contains(t, out, "conciliación OK")
}
