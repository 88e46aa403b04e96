// Package log provides the logging infrastructure for the records service.
//
// Loggers are injected, never global: each component receives a log.Logger
// via its constructor and may add context with logger.With(). Tests use
// NewNop or NewWithWriter to capture output.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a type alias for *slog.Logger. Using the standard library type
// directly keeps full compatibility with the slog ecosystem and avoids a
// custom interface. Components should accept log.Logger as a dependency.
type Logger = *slog.Logger

// Config defines logger configuration options.
type Config struct {
	// Level sets the minimum log level. Default: slog.LevelInfo
	Level slog.Level

	// JSON enables JSON format output. Default: false (text format)
	JSON bool

	// AddSource adds source file information to log entries. Default: false
	AddSource bool
}

// New creates a new logger with the given configuration.
// Output is written to os.Stderr.
func New(cfg Config) Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a new logger that writes to the specified writer.
// Useful for testing or custom output destinations:
//
//	var buf bytes.Buffer
//	logger := log.NewWithWriter(&buf, log.Config{})
func NewWithWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// NewNop creates a logger that discards all output. Only for tests;
// production code should use New or NewWithWriter.
func NewNop() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
