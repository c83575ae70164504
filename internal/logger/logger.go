package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = newLogger(os.Stderr, zerolog.InfoLevel)
)

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "namesake").Logger()
}

func console(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
}

func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Init configures the package logger. Console output goes to stderr; when
// logfilePath is set, JSON lines are appended to that file as well.
func Init(logfilePath string, levelStr string) error {
	level := ParseLevel(levelStr)

	var out io.Writer = console(os.Stderr)
	if logfilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logfilePath), 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(logfilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		out = zerolog.MultiLevelWriter(out, f)
	}

	SetOutput(out, level)
	return nil
}

// SetOutput replaces the writer and level. Tests use it to capture logs.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w, level)
}

// L returns the current logger for structured, component-scoped logging.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, args ...any) {
	l := L()
	l.Debug().Msgf(msg, args...)
}

func Info(msg string, args ...any) {
	l := L()
	l.Info().Msgf(msg, args...)
}

func Warn(msg string, args ...any) {
	l := L()
	l.Warn().Msgf(msg, args...)
}

func Error(msg string, args ...any) {
	l := L()
	l.Error().Msgf(msg, args...)
}
