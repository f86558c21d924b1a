package instrument

import (
	"context"

	"go.opentelemetry.io/otel/baggage"
)

// ProvenanceKey is the Metadata key forwarded to the target as
// ExecContext.Provenance.
const ProvenanceKey = "provenance"

// TenantBaggageKey is the OpenTelemetry baggage member carrying the tenant
// on the ctx handed to the target.
const TenantBaggageKey = "tenant.id"

// Call is the per-invocation input. The instrument never writes to it and
// never retains it after the call completes.
type Call struct {
	// Args are forwarded to the target.
	Args []any

	// ArgsToLog are attached to log events instead of Args. Callers are
	// responsible for redacting them.
	ArgsToLog []any

	// Metadata is the parent context metadata. It is copied, never mutated.
	Metadata Metadata

	// TargetMetadata overrides the target identity captured at New.
	TargetMetadata Metadata

	// ParentSpan enables tracing for this call when non-nil.
	ParentSpan Span

	// TenantID is forwarded to the target.
	TenantID string

	// ErrorLevel is the level of the failure log. Defaults to "error".
	ErrorLevel string

	// NoErrorTag leaves failed spans untagged. By default a failed span is
	// tagged error=true before it is finished.
	NoErrorTag bool
}

func (c *Call) errorLevel() string {
	if c.ErrorLevel == "" {
		return LevelError
	}
	return c.ErrorLevel
}

// ExecContext is the execution context handed to the target, both as its
// trailing argument and on the ctx (see FromContext).
type ExecContext struct {
	// ParentSpan is the span the target should nest under: the child span
	// created for this call, or the caller's span when none was created.
	ParentSpan Span

	// Provenance is Call.Metadata["provenance"].
	Provenance any

	TenantID string
}

type execContextKey struct{}

// WithExecContext returns a copy of ctx carrying exec.
func WithExecContext(ctx context.Context, exec *ExecContext) context.Context {
	return context.WithValue(ctx, execContextKey{}, exec)
}

// FromContext returns the ExecContext carried by ctx, or nil.
//
// Instruments consult it too: a Call without ParentSpan or TenantID inherits
// them from the ctx, so an instrumented target calling another instrumented
// method nests its spans without extra wiring.
func FromContext(ctx context.Context) *ExecContext {
	exec, _ := ctx.Value(execContextKey{}).(*ExecContext)
	return exec
}

// withTenantBaggage adds the tenant to the ctx's baggage. Invalid tenant
// values are left out of the baggage.
func withTenantBaggage(ctx context.Context, tenantID string) context.Context {
	if tenantID == "" {
		return ctx
	}
	member, err := baggage.NewMemberRaw(TenantBaggageKey, tenantID)
	if err != nil {
		return ctx
	}
	bag, err := baggage.FromContext(ctx).SetMember(member)
	if err != nil {
		return ctx
	}
	return baggage.ContextWithBaggage(ctx, bag)
}
