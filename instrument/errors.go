package instrument

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Configuration errors. New wraps the specific cause together with
// ErrInvalidConfig so callers can match either.
var (
	// ErrInvalidConfig indicates the Config cannot produce an Instrument.
	ErrInvalidConfig = errors.New("instrument: invalid config")

	// ErrNilMethod indicates Config.Method is nil or a nil func value.
	ErrNilMethod = errors.New("instrument: method is nil")

	// ErrUnsupportedMethod indicates Config.Method does not match any
	// supported calling convention.
	ErrUnsupportedMethod = errors.New("instrument: unsupported method signature")

	// ErrMethodNotFound indicates a method name does not resolve to an
	// exported method of Config.Target.
	ErrMethodNotFound = errors.New("instrument: method not found on target")
)

func configError(cause error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, cause)
	}
	return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, cause, fmt.Sprintf(format, args...))
}

// PanicError is reported to the sinks when the target panics. The panic
// itself is re-raised after the epilog, so callers never receive it as a
// returned error.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("instrument: target panicked: %v", e.Value)
}
