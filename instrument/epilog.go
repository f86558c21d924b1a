package instrument

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	pkgerrors "github.com/pkg/errors"
)

// epilog is the per-invocation finalization state.
type epilog struct {
	ctx     context.Context
	name    string
	logs    LogsSink
	metrics MetricsSink

	merged     Metadata
	argsToLog  []any
	errorLevel string
	tagErrors  bool

	span  *spanController
	timer Timer
}

// finalize emits the latency gauge, the failure log when err is set, and
// finishes the span. The completion guarantees it runs once per call.
func (e *epilog) finalize(err error) {
	elapsed := e.timer.Elapsed()
	if e.metrics != nil {
		e.metrics.Gauge(e.ctx, MetricLatency, Gauge{
			Unit:     UnitMillis,
			Value:    Milliseconds(elapsed),
			Metadata: CloneMetadata(e.merged),
		})
	}

	if err == nil {
		e.span.onSuccess()
		return
	}

	if e.logs != nil {
		e.logs.Log(e.ctx, e.errorLevel, e.name+" failed", e.merged, Metadata{
			TargetKey: Metadata{"args": e.argsToLog},
			"error":   err,
			"stack":   errorStack(err),
		})
	}
	e.span.onFailure(e.tagErrors)
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// errorStack renders the stack recorded on err, falling back to the
// completion stack: the goroutine running the epilog, which is not
// necessarily where err was created.
func errorStack(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%+v", st.StackTrace())
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return string(debug.Stack())
}
