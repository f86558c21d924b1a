package observe

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/callscope/instrument"
)

// Span adapts an OTel span to instrument.Span.
//
// Children are started on the Span's tracer, under the Span's context, with
// the metadata flattened into attributes.
type Span struct {
	tracer trace.Tracer
	span   trace.Span
	ctx    context.Context
}

var (
	_ instrument.Span        = (*Span)(nil)
	_ instrument.ContextSpan = (*Span)(nil)
)

// ParentSpan wraps the span carried by ctx so it can be used as
// instrument.Call.ParentSpan. If ctx carries no span, children become roots.
func ParentSpan(ctx context.Context, tracer trace.Tracer) *Span {
	return &Span{tracer: tracer, span: trace.SpanFromContext(ctx), ctx: ctx}
}

// StartSpan starts a new span on tracer and wraps it.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, md instrument.Metadata) *Span {
	ctx, span := tracer.Start(ctx, name,
		trace.WithAttributes(Attributes(md)...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return &Span{tracer: tracer, span: span, ctx: ctx}
}

// ChildSpan starts a span nested under s.
func (s *Span) ChildSpan(name string, md instrument.Metadata) instrument.Span {
	return StartSpan(s.ctx, s.tracer, name, md)
}

// Tag sets an attribute. Tagging error=true also marks the span status.
func (s *Span) Tag(key string, value any) {
	s.span.SetAttributes(toKeyValue(key, value))
	if b, ok := value.(bool); ok && b && key == instrument.TagError {
		s.span.SetStatus(codes.Error, "")
	}
}

// Finish ends the span.
func (s *Span) Finish() {
	s.span.End()
}

// ContextWith returns ctx carrying the wrapped span.
func (s *Span) ContextWith(ctx context.Context) context.Context {
	return trace.ContextWithSpan(ctx, s.span)
}

// Context returns the context the span was started with.
func (s *Span) Context() context.Context {
	return s.ctx
}

// SpanContext returns the wrapped span's identity.
func (s *Span) SpanContext() trace.SpanContext {
	return s.span.SpanContext()
}
