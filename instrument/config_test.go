package instrument

import (
	"context"
	"errors"
	"testing"
)

type store struct {
	data map[string]string
}

func (s *store) Get(ctx context.Context, args []any, exec *ExecContext) (any, error) {
	key, _ := args[0].(string)
	v, ok := s.data[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (s *store) Fetch(ctx context.Context, args []any, done Callback, exec *ExecContext) {
	v, err := s.Get(ctx, args, exec)
	done(err, v)
}

func (s *store) Lookup(ctx context.Context, args []any, done Callback, exec *ExecContext) (any, bool, error) {
	v, err := s.Get(ctx, args, exec)
	return v, false, err
}

func (s *store) Size() int {
	return len(s.data)
}

type described struct{}

func (described) TargetMetadata() Metadata {
	return Metadata{"module": "billing", "version": "1.2.0"}
}

func (described) Charge(ctx context.Context, args []any, exec *ExecContext) (any, error) {
	return "charged", nil
}

// TestNew_ConfigErrors verifies invalid methods fail at construction.
func TestNew_ConfigErrors(t *testing.T) {
	var nilAwait AwaitFunc

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "nil method", cfg: Config{}, wantErr: ErrNilMethod},
		{name: "nil func value", cfg: Config{Method: nilAwait}, wantErr: ErrNilMethod},
		{name: "empty method name", cfg: Config{Target: &store{}, Method: ""}, wantErr: ErrNilMethod},
		{name: "not a func", cfg: Config{Method: 42}, wantErr: ErrUnsupportedMethod},
		{name: "wrong signature", cfg: Config{Method: func(int) int { return 0 }}, wantErr: ErrUnsupportedMethod},
		{name: "method missing", cfg: Config{Target: &store{}, Method: "Delete"}, wantErr: ErrMethodNotFound},
		{name: "method name without target", cfg: Config{Method: "Get"}, wantErr: ErrMethodNotFound},
		{name: "method with wrong signature", cfg: Config{Target: &store{}, Method: "Size"}, wantErr: ErrUnsupportedMethod},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := New(tc.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if in != nil {
				t.Error("expected nil instrument on error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestNew_Conventions verifies the convention is chosen from the method shape.
func TestNew_Conventions(t *testing.T) {
	s := &store{}

	tests := []struct {
		name   string
		method any
		want   Convention
	}{
		{"await method value", s.Get, ConventionAwait},
		{"callback method value", s.Fetch, ConventionCallback},
		{"hybrid method value", s.Lookup, ConventionHybrid},
		{"await by name", "Get", ConventionAwait},
		{"callback by name", "Fetch", ConventionCallback},
		{"hybrid by name", "Lookup", ConventionHybrid},
		{"named await func", AwaitFunc(s.Get), ConventionAwait},
		{"named callback func", CallbackFunc(s.Fetch), ConventionCallback},
		{"named hybrid func", HybridFunc(s.Lookup), ConventionHybrid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := New(Config{Target: s, Method: tc.method})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := in.Convention(); got != tc.want {
				t.Errorf("Convention() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNew_DisplayName(t *testing.T) {
	s := &store{}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"from method value", Config{Method: s.Get}, "Get"},
		{"from method name", Config{Target: s, Method: "Fetch"}, "Fetch"},
		{"explicit", Config{Method: s.Get, DisplayName: "store.get"}, "store.get"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := in.Name(); got != tc.want {
				t.Errorf("Name() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTargetIdentity(t *testing.T) {
	if md := targetIdentity(nil); md != nil {
		t.Errorf("expected nil identity for nil target, got %v", md)
	}

	md := targetIdentity(described{})
	if md["module"] != "billing" || md["version"] != "1.2.0" {
		t.Errorf("expected Describer metadata, got %v", md)
	}

	md = targetIdentity(&store{})
	if md["module"] != "github.com/jonwraymond/callscope/instrument" {
		t.Errorf("expected package path module, got %v", md["module"])
	}
	if md["type"] != "store" {
		t.Errorf("expected type 'store', got %v", md["type"])
	}
}

func TestConvention_String(t *testing.T) {
	tests := map[Convention]string{
		ConventionAwait:    "await",
		ConventionCallback: "callback",
		ConventionHybrid:   "hybrid",
		Convention(99):     "unknown",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(c), got, want)
		}
	}
}
