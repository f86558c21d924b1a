package instrument

import "sync/atomic"

// TagError is the tag set on spans of failed invocations.
const TagError = "error"

// startChild creates the invocation's span. Tracing is opt-in per call: no
// parent means no span. A panicking tracer yields no span.
func startChild(parent Span, name string, md Metadata) (child Span) {
	if parent == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			child = nil
		}
	}()
	return parent.ChildSpan(name, md)
}

// spanController owns the invocation's span and finishes it at most once.
type spanController struct {
	span     Span
	finished atomic.Bool
}

func newSpanController(parent Span, name string, md Metadata) *spanController {
	return &spanController{span: startChild(parent, name, md)}
}

// onFailure tags the span as failed when tag is set, then finishes it.
func (c *spanController) onFailure(tag bool) {
	if !c.claim() {
		return
	}
	if tag {
		bestEffort(func() { c.span.Tag(TagError, true) })
	}
	bestEffort(c.span.Finish)
}

// onSuccess finishes the span without tagging.
func (c *spanController) onSuccess() {
	if !c.claim() {
		return
	}
	bestEffort(c.span.Finish)
}

func (c *spanController) claim() bool {
	return c.span != nil && c.finished.CompareAndSwap(false, true)
}

// bestEffort runs a tracing call, dropping any panic it raises.
func bestEffort(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
