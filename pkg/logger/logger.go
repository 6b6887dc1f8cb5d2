package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the process-wide logger.
type Options struct {
	ServiceName string
	Level       string
	Format      string // json or console
	Output      io.Writer
}

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

func init() {
	Setup(Options{
		ServiceName: "storefront",
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
}

// Setup replaces the process-wide logger. Safe to call more than once.
func Setup(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	l := zerolog.New(out).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger().
		Level(ParseLevel(opts.Level))

	mu.Lock()
	base = l
	mu.Unlock()
}

func ParseLevel(value string) zerolog.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(value); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

// Logger exposes the underlying zerolog logger for structured call sites.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

func Info(format string, v ...interface{}) {
	Logger().Info().Msg(fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	Logger().Error().Msg(fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	Logger().Debug().Msg(fmt.Sprintf(format, v...))
}

func Warn(format string, v ...interface{}) {
	Logger().Warn().Msg(fmt.Sprintf(format, v...))
}

// Helper for order lifecycle logs
func LogOrderError(orderID, action string, err error) {
	Logger().Warn().
		Str("order_id", orderID).
		Str("action", action).
		Err(err).
		Msg("order operation failed")
}
