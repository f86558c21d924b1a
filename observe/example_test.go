package observe_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/callscope/instrument"
	"github.com/jonwraymond/callscope/observe"
)

func ExampleNewObserver() {
	cfg := observe.Config{
		ServiceName: "example-service",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     observe.MetricsConfig{Enabled: false},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = obs.Shutdown(ctx)
	}()

	fmt.Println("Observer created successfully")
	fmt.Println("Metrics sink:", obs.Metrics() != nil)
	// Output:
	// Observer created successfully
	// Metrics sink: false
}

func ExampleNewObserver_validation() {
	// Missing service name triggers validation error
	cfg := observe.Config{
		ServiceName: "", // Empty - will fail validation
	}

	ctx := context.Background()
	_, err := observe.NewObserver(ctx, cfg)
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("Caught: missing service name")
	}
	// Output:
	// Caught: missing service name
}

func ExampleConfig_Validate() {
	cfg := observe.Config{
		ServiceName: "my-service",
		Tracing: observe.TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 0.5, // 50% sampling
		},
	}
	fmt.Println("valid:", cfg.Validate() == nil)

	cfg.Tracing.Exporter = "zipkin"
	fmt.Println("invalid exporter:", errors.Is(cfg.Validate(), observe.ErrInvalidTracingExporter))
	// Output:
	// valid: true
	// invalid exporter: true
}

func ExampleLoadConfig() {
	doc := []byte(`
service_name: checkout
tracing:
  enabled: true
  exporter: none
  sample_pct: 0.25
logging:
  enabled: true
  level: warn
`)

	cfg, err := observe.LoadConfig(doc, "yaml")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(cfg.ServiceName, cfg.Tracing.SamplePct, cfg.Logging.Level)
	// Output:
	// checkout 0.25 warn
}

func ExampleNewLoggerWithWriter() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	logger.Log(context.Background(), "info", "attempting fetch",
		instrument.Metadata{"target": map[string]any{"method": "fetch"}}, nil)

	fmt.Println(strings.Contains(buf.String(), `"metadata":{"target":{"method":"fetch"}}`))
	// Output:
	// true
}

func ExampleNewInstrument() {
	ctx := context.Background()

	cfg := observe.Config{
		ServiceName: "example",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
		Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "none"},
	}
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = obs.Shutdown(ctx)
	}()

	in, err := observe.NewInstrument(obs, instrument.Config{
		DisplayName: "lookup",
		Method: func(ctx context.Context, args []any, exec *instrument.ExecContext) (any, error) {
			return fmt.Sprintf("user:%v", args[0]), nil
		},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	result, err := in.Call(ctx, instrument.Call{
		Args:       []any{42},
		ParentSpan: observe.ParentSpan(ctx, obs.Tracer()),
	})
	fmt.Println(result, err)
	// Output:
	// user:42 <nil>
}

func ExampleParseLogLevel() {
	levels := []string{"debug", "info", "warn", "error", "unknown"}
	for _, s := range levels {
		level := observe.ParseLogLevel(s)
		fmt.Printf("%s -> %s\n", s, level)
	}
	// Output:
	// debug -> DEBUG
	// info -> INFO
	// warn -> WARN
	// error -> ERROR
	// unknown -> INFO
}
