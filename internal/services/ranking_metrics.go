package services

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	rankingRequestMetricName    = "ranking_requests_total"
	rankingLatencyMetricName    = "ranking_latency_ms"
	rankingCandidateMetricName  = "ranking_candidates"
	preferenceApplyMetricName   = "ranking_preference_apply_total"
	preferenceConflictMetric    = "ranking_preference_conflicts_total"
	trendingCacheHitMetricName  = "ranking_trending_cache_hits_total"
	trendingCacheMissMetricName = "ranking_trending_cache_misses_total"
)

var (
	attrMode        = attribute.Key("mode")
	attrOutcome     = attribute.Key("outcome")
	attrInteraction = attribute.Key("interaction_type")
)

type rankingMetrics struct {
	requests   metric.Int64Counter
	latency    metric.Float64Histogram
	candidates metric.Int64Histogram
	applies    metric.Int64Counter
	conflicts  metric.Int64Counter
	cacheHits  metric.Int64Counter
	cacheMiss  metric.Int64Counter
}

var (
	rankingMetricsOnce sync.Once
	rankingMetricsInst *rankingMetrics
)

// sharedRankingMetrics 惰性初始化指标；任一仪表创建失败时返回 nil，记录调用全部降级为 no-op。
func sharedRankingMetrics() *rankingMetrics {
	rankingMetricsOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter("lingo-services-ranking.services.ranking")
		m := &rankingMetrics{}
		var err error
		if m.requests, err = meter.Int64Counter(rankingRequestMetricName,
			metric.WithDescription("Number of ranking requests by mode and outcome")); err != nil {
			return
		}
		if m.latency, err = meter.Float64Histogram(rankingLatencyMetricName,
			metric.WithDescription("End-to-end ranking latency"), metric.WithUnit("ms")); err != nil {
			return
		}
		if m.candidates, err = meter.Int64Histogram(rankingCandidateMetricName,
			metric.WithDescription("Number of eligible candidates scored per request")); err != nil {
			return
		}
		if m.applies, err = meter.Int64Counter(preferenceApplyMetricName,
			metric.WithDescription("Number of interactions applied to affinity profiles")); err != nil {
			return
		}
		if m.conflicts, err = meter.Int64Counter(preferenceConflictMetric,
			metric.WithDescription("Number of affinity updates that exhausted conflict retries")); err != nil {
			return
		}
		if m.cacheHits, err = meter.Int64Counter(trendingCacheHitMetricName,
			metric.WithDescription("Trending cache hits")); err != nil {
			return
		}
		if m.cacheMiss, err = meter.Int64Counter(trendingCacheMissMetricName,
			metric.WithDescription("Trending cache misses")); err != nil {
			return
		}
		rankingMetricsInst = m
	})
	return rankingMetricsInst
}

func outcomeOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *rankingMetrics) recordRank(ctx context.Context, mode string, started time.Time, candidates int, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attrMode.String(mode), attrOutcome.String(outcomeOf(err)))
	m.requests.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(time.Since(started).Milliseconds()), attrs)
	if err == nil {
		m.candidates.Record(ctx, int64(candidates), metric.WithAttributes(attrMode.String(mode)))
	}
}

func (m *rankingMetrics) recordApply(ctx context.Context, interaction string, err error) {
	if m == nil {
		return
	}
	m.applies.Add(ctx, 1, metric.WithAttributes(
		attrInteraction.String(interaction),
		attrOutcome.String(outcomeOf(err)),
	))
}

func (m *rankingMetrics) recordConflict(ctx context.Context) {
	if m == nil {
		return
	}
	m.conflicts.Add(ctx, 1)
}

func (m *rankingMetrics) recordCache(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Add(ctx, 1)
		return
	}
	m.cacheMiss.Add(ctx, 1)
}
