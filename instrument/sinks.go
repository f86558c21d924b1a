package instrument

import "context"

// Metadata is a free-form telemetry record. Nested records use the same type.
type Metadata = map[string]any

// Log levels used by the instrument itself. LogsSink implementations may
// accept others through Call.ErrorLevel.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// MetricLatency is the gauge emitted once per invocation.
const (
	MetricLatency = "latency"
	UnitMillis    = "ms"
)

// LogsSink receives structured log events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: metadata and details are read-only for the sink.
// - Errors: a panic is treated as a programming error and is not recovered.
type LogsSink interface {
	Log(ctx context.Context, level, msg string, metadata, details Metadata)
}

// Gauge is a single gauge observation.
type Gauge struct {
	Unit     string
	Value    float64
	Metadata Metadata
}

// MetricsSink receives gauge observations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: the Gauge metadata is a private copy and may be retained.
// - Errors: a panic is treated as a programming error and is not recovered.
type MetricsSink interface {
	Gauge(ctx context.Context, name string, g Gauge)
}

// Span is the tracing collaborator.
//
// Contract:
// - Errors: the instrument recovers panics from every method; a failing
//   tracer never changes the outcome of a call.
type Span interface {
	// ChildSpan starts a span nested under the receiver.
	ChildSpan(name string, metadata Metadata) Span
	// Tag attaches a key/value pair to the span.
	Tag(key string, value any)
	// Finish ends the span.
	Finish()
}

// ContextSpan is implemented by spans that can install themselves into a
// context.Context. The ctx handed to the target then carries the span, so
// tracers that read spans from ctx nest correctly.
type ContextSpan interface {
	ContextWith(ctx context.Context) context.Context
}

// Describer is implemented by targets that publish their own identity
// metadata (module, version, ...).
type Describer interface {
	TargetMetadata() Metadata
}
