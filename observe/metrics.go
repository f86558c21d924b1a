package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/callscope/instrument"
)

// Metrics implements instrument.MetricsSink with OTel gauges.
//
// Instruments are created lazily, one per (name, unit), and reused.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: instrument creation failures go to the global OTel error handler.
type Metrics struct {
	meter  metric.Meter
	gauges sync.Map // gaugeKey -> metric.Float64Gauge
	group  singleflight.Group
}

var _ instrument.MetricsSink = (*Metrics)(nil)

// NewMetrics creates a Metrics sink on meter.
func NewMetrics(meter metric.Meter) *Metrics {
	return &Metrics{meter: meter}
}

// Gauge records g on the gauge called name.
func (m *Metrics) Gauge(ctx context.Context, name string, g instrument.Gauge) {
	gauge, err := m.gauge(name, g.Unit)
	if err != nil {
		otel.Handle(err)
		return
	}
	gauge.Record(ctx, g.Value, metric.WithAttributes(Attributes(g.Metadata)...))
}

func (m *Metrics) gauge(name, unit string) (metric.Float64Gauge, error) {
	key := name + "\x00" + unit
	if g, ok := m.gauges.Load(key); ok {
		return g.(metric.Float64Gauge), nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		if g, ok := m.gauges.Load(key); ok {
			return g, nil
		}
		g, err := m.meter.Float64Gauge(name,
			metric.WithDescription("Instrumented call "+name),
			metric.WithUnit(unit),
		)
		if err != nil {
			return nil, err
		}
		m.gauges.Store(key, g)
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(metric.Float64Gauge), nil
}
