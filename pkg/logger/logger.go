// Package logger arma el logger estructurado del servicio sobre zerolog.
// En development escribe consola legible para trabajar en local; en cualquier
// otro entorno emite JSON por stdout, listo para el recolector.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Config parámetros del logger, tomados de la configuración de la app.
type Config struct {
	Env   string // development activa la salida de consola
	Level string // debug, info, warn, error; info si viene vacío o desconocido
}

// Logger envoltorio inyectable sobre zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz según el entorno y redirige el logger global
// de zerolog, para que las librerías que lo usan salgan por el mismo destino.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	zl := zerolog.New(out).Level(levelFrom(cfg.Level)).With().Timestamp().Logger()
	zlog.Logger = zl

	return &Logger{zl: zl}
}

func levelFrom(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component devuelve un sublogger con el campo component fijo, para separar
// los binarios (api, reconcile) en la salida agregada.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
