package diag

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Sink receives named diagnostic events from engine components.
// Implementations must be safe for concurrent use because loader callbacks and
// the frame loop may emit at the same time.
type Sink interface {
	// Emit records a single event.
	//
	// Parameters:
	//   - level: severity of the event
	//   - name: dotted event name, e.g. "spawner.piece"
	//   - attrs: structured key/value payload
	Emit(level slog.Level, name string, attrs ...slog.Attr)
}

type logSink struct {
	logger *slog.Logger
}

var _ Sink = &logSink{}

// NewLogSink wraps a slog.Logger as a Sink. A nil logger falls back to slog.Default().
//
// Parameters:
//   - logger: the structured logger events are written to
//
// Returns:
//   - Sink: the logging sink
func NewLogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &logSink{logger: logger}
}

// NewTextSink creates a Sink writing slog text records at or above level to w.
//
// Parameters:
//   - w: destination writer (typically os.Stderr)
//   - level: minimum level that is written
//
// Returns:
//   - Sink: the logging sink
func NewTextSink(w io.Writer, level slog.Level) Sink {
	return NewLogSink(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (s *logSink) Emit(level slog.Level, name string, attrs ...slog.Attr) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	s.logger.LogAttrs(ctx, level, name, attrs...)
}

type nopSink struct{}

// Nop returns a Sink that discards every event.
func Nop() Sink {
	return nopSink{}
}

func (nopSink) Emit(slog.Level, string, ...slog.Attr) {}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown names resolve to info.
//
// Parameters:
//   - name: the level name, case-insensitive
//
// Returns:
//   - slog.Level: the parsed level
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
