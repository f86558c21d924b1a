package observe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"dario.cat/mergo"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jonwraymond/callscope/instrument"
)

// Rotation defaults for file output.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 30
)

var defaultRotation = RotationConfig{
	MaxSizeMB:  DefaultMaxSizeMB,
	MaxBackups: DefaultMaxBackups,
	MaxAgeDays: DefaultMaxAgeDays,
}

// ParseLogLevel parses a string log level. Unknown levels map to info.
func ParseLogLevel(s string) slog.Level {
	if lvl, ok := eventLevel(s); ok {
		return lvl
	}
	return slog.LevelInfo
}

// eventLevel maps the level names accepted by Logger.Log.
func eventLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	case "fatal", "critical":
		return slog.LevelError + 4, true
	default:
		return 0, false
	}
}

// Logger is a structured logger implementing instrument.LogsSink.
//
// Each event carries two groups, "metadata" and "details", plus trace_id and
// span_id when the ctx holds a valid span.
type Logger struct {
	logger *slog.Logger
	closer io.Closer
}

var _ instrument.LogsSink = (*Logger)(nil)

// NewLogger creates a Logger from cfg.
func NewLogger(cfg LoggingConfig) (*Logger, error) {
	var (
		w      io.Writer
		closer io.Closer
	)
	switch cfg.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		rot, err := withRotationDefaults(cfg.Rotation)
		if err != nil {
			return nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
			MaxAge:     rot.MaxAgeDays,
			Compress:   rot.Compress,
		}
		w, closer = lj, lj
	}

	handler, err := newHandler(cfg.Format, ParseLogLevel(cfg.Level), w)
	if err != nil {
		return nil, err
	}
	return &Logger{logger: slog.New(handler), closer: closer}, nil
}

// NewLoggerWithWriter creates a JSON Logger writing to w.
func NewLoggerWithWriter(level string, w io.Writer) *Logger {
	return &Logger{
		logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(level)})),
	}
}

func newHandler(format string, level slog.Level, w io.Writer) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, format)
	}
}

// withRotationDefaults fills the unset fields of rot from defaultRotation.
func withRotationDefaults(rot RotationConfig) (RotationConfig, error) {
	if err := mergo.Merge(&rot, defaultRotation); err != nil {
		return RotationConfig{}, fmt.Errorf("observe: rotation defaults: %w", err)
	}
	return rot, nil
}

// Log emits one event. Unknown levels are logged at error so that failure
// events are never filtered out by a typo.
func (l *Logger) Log(ctx context.Context, level, msg string, metadata, details instrument.Metadata) {
	lvl, ok := eventLevel(level)
	if !ok {
		lvl = slog.LevelError
	}
	if !l.logger.Enabled(ctx, lvl) {
		return
	}

	attrs := make([]slog.Attr, 0, 4)
	if len(metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", renderValue(metadata)))
	}
	if len(details) > 0 {
		attrs = append(attrs, slog.Any("details", renderValue(details)))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	l.logger.LogAttrs(ctx, lvl, msg, attrs...)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// renderValue prepares metadata for encoding. Errors become their message.
func renderValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = renderValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = renderValue(val)
		}
		return out
	case error:
		return t.Error()
	default:
		return v
	}
}
