package instrument

import (
	"context"
	"sync"
	"sync/atomic"
)

// Instrument wraps one target method with logs, a latency gauge and a
// child span.
//
// Contract:
//   - Concurrency: safe for concurrent use; calls share only the immutable
//     configuration.
//   - Context: Relay and Call hand ctx to the target. For callback
//     completions, a done ctx completes the call with ctx.Err().
//   - Errors: target errors are propagated unchanged.
type Instrument struct {
	name            string
	identity        Metadata
	suppressContext bool
	logs            LogsSink
	metrics         MetricsSink
	adapter         adapter
}

// New validates cfg and binds the method. Method resolution happens once
// here; an unresolvable method is reported now rather than per call.
func New(cfg Config) (*Instrument, error) {
	a, id, err := resolveMethod(cfg.Target, cfg.Method)
	if err != nil {
		return nil, err
	}

	name := cfg.DisplayName
	if name == "" {
		name = id
	}

	return &Instrument{
		name:            name,
		identity:        targetIdentity(cfg.Target),
		suppressContext: cfg.SuppressContext,
		logs:            cfg.Logs,
		metrics:         cfg.Metrics,
		adapter:         a,
	}, nil
}

// Name returns the display name used in logs and spans.
func (in *Instrument) Name() string {
	return in.name
}

// Convention returns the calling convention bound at New.
func (in *Instrument) Convention() Convention {
	return in.adapter.convention()
}

// Call invokes the target and returns its outcome directly. It blocks until
// the target completes; for callback completions it also returns when ctx
// is done.
func (in *Instrument) Call(ctx context.Context, call Call) (any, error) {
	type outcome struct {
		result any
		err    error
	}
	ch := make(chan outcome, 1)
	in.Relay(ctx, call, func(err error, result any) {
		ch <- outcome{result: result, err: err}
	})
	o := <-ch
	return o.result, o.err
}

// Relay invokes the target and delivers its outcome to done exactly once.
// Synchronous completions are delivered before Relay returns; callback
// completions are delivered on the goroutine that completes them.
func (in *Instrument) Relay(ctx context.Context, call Call, done Callback) {
	if ctx == nil {
		ctx = context.Background()
	}

	c, targetCtx, exec := in.begin(ctx, &call, done)

	defer func() {
		if r := recover(); r != nil {
			c.abort(r)
			panic(r)
		}
	}()

	result, completed, err := in.adapter.invoke(targetCtx, call.Args, c.complete, exec)
	if completed {
		c.complete(err, result)
		return
	}
	c.watch(ctx)
}

// begin runs everything that precedes the target invocation: metadata merge,
// pre-call log, span start and timer start.
func (in *Instrument) begin(ctx context.Context, call *Call, done Callback) (*completion, context.Context, *ExecContext) {
	parentSpan, tenantID := call.ParentSpan, call.TenantID
	if outer := FromContext(ctx); outer != nil {
		if parentSpan == nil {
			parentSpan = outer.ParentSpan
		}
		if tenantID == "" {
			tenantID = outer.TenantID
		}
	}

	merged := MergeMetadata(call.Metadata, in.name, in.identity, call.TargetMetadata)

	if in.logs != nil {
		in.logs.Log(ctx, LevelInfo, "attempting "+in.name, merged, Metadata{
			TargetKey: Metadata{"args": call.ArgsToLog},
		})
	}

	span := newSpanController(parentSpan, in.name, merged)

	ep := &epilog{
		ctx:        context.WithoutCancel(ctx),
		name:       in.name,
		logs:       in.logs,
		metrics:    in.metrics,
		merged:     merged,
		argsToLog:  call.ArgsToLog,
		errorLevel: call.errorLevel(),
		tagErrors:  !call.NoErrorTag,
		span:       span,
		timer:      StartTimer(),
	}

	targetCtx := ctx
	var exec *ExecContext
	if !in.suppressContext {
		execSpan := parentSpan
		if span.span != nil {
			execSpan = span.span
		}
		exec = &ExecContext{
			ParentSpan: execSpan,
			Provenance: call.Metadata[ProvenanceKey],
			TenantID:   tenantID,
		}
		targetCtx = WithExecContext(targetCtx, exec)
	}
	if cs, ok := span.span.(ContextSpan); ok {
		bestEffort(func() { targetCtx = cs.ContextWith(targetCtx) })
	}
	targetCtx = withTenantBaggage(targetCtx, tenantID)

	return &completion{epilog: ep, done: done}, targetCtx, exec
}

// completion funnels every exit path of one invocation into a single run of
// the epilog.
type completion struct {
	once     sync.Once
	epilog   *epilog
	done     Callback
	finished atomic.Bool
	stop     atomic.Pointer[func() bool]
}

// complete finalizes the invocation and delivers the outcome. Later calls,
// such as a target invoking its callback twice, are ignored.
func (c *completion) complete(err error, result any) {
	c.once.Do(func() {
		c.finished.Store(true)
		if stop := c.stop.Load(); stop != nil {
			(*stop)()
		}
		c.epilog.finalize(err)
		if c.done != nil {
			c.done(err, result)
		}
	})
}

// abort finalizes the invocation for a panicking target. The outcome is not
// delivered; the panic continues to unwind the caller.
func (c *completion) abort(v any) {
	c.once.Do(func() {
		c.finished.Store(true)
		c.epilog.finalize(newPanicError(v))
	})
}

// watch completes a pending invocation with ctx.Err() once ctx is done.
func (c *completion) watch(ctx context.Context) {
	if ctx.Done() == nil {
		return
	}
	stop := context.AfterFunc(ctx, func() {
		c.complete(ctx.Err(), nil)
	})
	c.stop.Store(&stop)
	if c.finished.Load() {
		stop()
	}
}
