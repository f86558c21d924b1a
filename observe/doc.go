// Package observe provides OpenTelemetry and slog backed collaborators for
// package instrument.
//
// It bootstraps tracer and meter providers from a Config, and exposes the
// sinks an Instrument consumes:
//
//   - Logger implements instrument.LogsSink on log/slog.
//   - Metrics implements instrument.MetricsSink with OTel gauges.
//   - Span adapts an OTel span to instrument.Span.
//
// NewInstrument wires an Observer's sinks into an instrument.Config.
package observe
