// Package instrument wraps a single target method so that every invocation
// emits the same telemetry: an "attempting"/"failed" log pair, a latency
// gauge, and a child trace span.
//
// An Instrument is built once from a Config and reused for every call. The
// target may follow one of three calling conventions:
//
//   - AwaitFunc: blocks and returns (result, error).
//   - CallbackFunc: reports completion through an error-first Callback.
//   - HybridFunc: returns synchronously, or reports pending and completes
//     later through the Callback.
//
// Callers pick the outward style per call: Call returns the outcome directly,
// Relay delivers it to a Callback. Either style works with every convention.
//
// Sinks and spans are optional. A nil LogsSink or MetricsSink disables that
// signal, and a child span is only created when the Call carries a parent
// span (directly or through an ExecContext on the ctx).
//
// # Guarantees
//
//   - The pre-call log precedes the target invocation, which precedes the
//     epilog (gauge, failure log, span finish, propagation).
//   - The epilog runs exactly once per call, on success, error, panic and
//     context cancellation of a pending callback completion.
//   - Errors from the target reach the caller unchanged.
//   - Panics raised by the span implementation are recovered and dropped;
//     panics from log and metric sinks are not.
//   - The caller's Metadata is never mutated. Containers (nested Metadata
//     and []any) are copied; every other value reaches the sinks as passed.
//
// # Failure stacks
//
// The "stack" detail of a failure log is the stack recorded on the error
// when it carries one (github.com/pkg/errors, or a recovered panic).
// Otherwise it is the completion stack: the goroutine that delivered the
// outcome, which for callback targets is the goroutine calling done and for
// cancelled calls is the context's AfterFunc goroutine.
package instrument
