package interactions

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "lingo-services-ranking.interactions"

type metrics struct {
	applyCounter metric.Int64Counter
	lagHistogram metric.Int64Histogram
}

func newMetrics() *metrics {
	m := otel.GetMeterProvider().Meter(meterName)
	applyCounter, _ := m.Int64Counter("ranking_interactions_apply_total")
	lagHistogram, _ := m.Int64Histogram("ranking_interactions_event_lag_ms")
	return &metrics{applyCounter: applyCounter, lagHistogram: lagHistogram}
}

func (m *metrics) recordSuccess(ctx context.Context, typ string, occurred, now time.Time) {
	if m == nil || m.applyCounter == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("result", "success"), attribute.String("type", typ))
	m.applyCounter.Add(ctx, 1, attrs)
	if !occurred.IsZero() && occurred.Before(now) {
		m.lagHistogram.Record(ctx, now.Sub(occurred).Milliseconds(), attrs)
	}
}

func (m *metrics) recordOutcome(ctx context.Context, typ, result string) {
	if m == nil || m.applyCounter == nil {
		return
	}
	m.applyCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result), attribute.String("type", typ)))
}
