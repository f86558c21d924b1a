package instrument

import "context"

// Callback is an error-first completion callback. It is used both for the
// target's own completion and for the outward Relay callback.
type Callback func(err error, result any)

// AwaitFunc is a target that blocks until the operation completes.
type AwaitFunc func(ctx context.Context, args []any, exec *ExecContext) (any, error)

// CallbackFunc is a target that reports completion through done, possibly
// from another goroutine.
type CallbackFunc func(ctx context.Context, args []any, done Callback, exec *ExecContext)

// HybridFunc is a target that either completes synchronously (pending is
// false, done is never called) or reports pending and completes through done.
type HybridFunc func(ctx context.Context, args []any, done Callback, exec *ExecContext) (result any, pending bool, err error)

// Convention identifies the calling convention bound at New.
type Convention int

const (
	ConventionAwait Convention = iota
	ConventionCallback
	ConventionHybrid
)

func (c Convention) String() string {
	switch c {
	case ConventionAwait:
		return "await"
	case ConventionCallback:
		return "callback"
	case ConventionHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// adapter invokes the target under one convention. A synchronous outcome is
// returned with completed set; otherwise the outcome arrives through done.
type adapter interface {
	convention() Convention
	invoke(ctx context.Context, args []any, done Callback, exec *ExecContext) (result any, completed bool, err error)
}

// adapt selects the adapter for fn's shape.
func adapt(fn any) (adapter, bool) {
	switch f := fn.(type) {
	case AwaitFunc:
		return awaitAdapter(f), true
	case func(context.Context, []any, *ExecContext) (any, error):
		return awaitAdapter(f), true
	case CallbackFunc:
		return callbackAdapter(f), true
	case func(context.Context, []any, Callback, *ExecContext):
		return callbackAdapter(f), true
	case HybridFunc:
		return hybridAdapter(f), true
	case func(context.Context, []any, Callback, *ExecContext) (any, bool, error):
		return hybridAdapter(f), true
	default:
		return nil, false
	}
}

type awaitAdapter AwaitFunc

func (awaitAdapter) convention() Convention { return ConventionAwait }

func (a awaitAdapter) invoke(ctx context.Context, args []any, _ Callback, exec *ExecContext) (any, bool, error) {
	result, err := a(ctx, args, exec)
	return result, true, err
}

type callbackAdapter CallbackFunc

func (callbackAdapter) convention() Convention { return ConventionCallback }

func (a callbackAdapter) invoke(ctx context.Context, args []any, done Callback, exec *ExecContext) (any, bool, error) {
	a(ctx, args, done, exec)
	return nil, false, nil
}

type hybridAdapter HybridFunc

func (hybridAdapter) convention() Convention { return ConventionHybrid }

func (a hybridAdapter) invoke(ctx context.Context, args []any, done Callback, exec *ExecContext) (any, bool, error) {
	result, pending, err := a(ctx, args, done, exec)
	if pending {
		return nil, false, nil
	}
	return result, true, err
}
