package instrument

import "time"

// Timer measures the latency of one invocation on the monotonic clock.
type Timer struct {
	start time.Time
}

// StartTimer captures the start of an invocation.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since StartTimer. It is never negative.
func (t Timer) Elapsed() time.Duration {
	d := time.Since(t.start)
	if d < 0 {
		return 0
	}
	return d
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
