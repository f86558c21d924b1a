package instrument

import (
	"testing"
	"time"
)

func TestTimer_ElapsedNonNegative(t *testing.T) {
	timer := StartTimer()
	if d := timer.Elapsed(); d < 0 {
		t.Fatalf("elapsed = %v, want >= 0", d)
	}

	time.Sleep(5 * time.Millisecond)
	if d := timer.Elapsed(); d < 5*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 5ms", d)
	}
}

func TestMilliseconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want float64
	}{
		{0, 0},
		{time.Millisecond, 1},
		{1500 * time.Microsecond, 1.5},
		{2 * time.Second, 2000},
	}
	for _, tc := range tests {
		if got := Milliseconds(tc.in); got != tc.want {
			t.Errorf("Milliseconds(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
