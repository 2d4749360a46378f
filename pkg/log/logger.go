// Package log provides structured logging for the analysis pipeline.
//
// Logging is built on log/slog with a JSON handler. A wrapping handler
// extracts cockroachdb/errors stack traces into a dedicated attribute, and
// a zerolog bridge routes estimator warnings into the same stream.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// Setup configures the default slog logger and wires estimator warnings
// into zerolog. Output goes to stderr so the analysis report on stdout
// stays clean.
func Setup(loglevel string) {
	SetupWithWriter(loglevel, os.Stderr)
}

// SetupWithWriter is Setup with a configurable destination, used by tests.
func SetupWithWriter(loglevel string, w io.Writer) {
	ops := slog.HandlerOptions{
		Level: ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(w, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))

	zl := zerolog.New(w).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		ev := zl.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj)
		}
		ev.Msg(warning.Error())
	})
}

// ToLogLevel maps a level name to a slog.Level. Unknown names panic, the
// level comes from a flag default and is never user data at runtime.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
