// Package outbox 将共享 Outbox 仓储与 Pub/Sub 发布器组装为可运行的审计事件发布任务。
package outbox

import (
	"context"

	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	outboxpublisher "github.com/bionicotaku/lingo-utils/outbox/publisher"
	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
)

const meterName = "lingo-services-ranking.outbox"

// pendingCounter 为积压观测所需的最小仓储能力。
type pendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// ProvideRunner 将共享仓储与 Pub/Sub 发布器包装为 Outbox Runner；未配置 topic 时返回 nil。
func ProvideRunner(
	repo *repositories.OutboxRepository,
	publisher gcpubsub.Publisher,
	pubCfg gcpubsub.Config,
	cfg outboxcfg.Config,
	logger log.Logger,
) *outboxpublisher.Runner {
	if repo == nil || logger == nil {
		return nil
	}
	helper := log.NewHelper(logger)
	if pubCfg.TopicID == "" {
		helper.Warn("skip initializing outbox runner: pubsub topic not configured")
		return nil
	}

	publisherCfg := cfg.Normalize().Publisher
	meter := runnerMeter(publisherCfg)
	if err := registerBacklogGauge(meter, repo); err != nil {
		helper.Warnf("register outbox backlog gauge failed: %v", err)
	}

	if boolValue(publisherCfg.LoggingEnabled, true) {
		helper.Infof("init outbox runner: topic=%s batch_size=%d workers=%d tick_interval=%s max_attempts=%d",
			pubCfg.TopicID, publisherCfg.BatchSize, publisherCfg.Workers, publisherCfg.TickInterval, publisherCfg.MaxAttempts)
	}

	runner, err := outboxpublisher.NewRunner(outboxpublisher.RunnerParams{
		Store:     repo.Shared(),
		Publisher: publisher,
		Config:    publisherCfg,
		Logger:    logger,
		Meter:     meter,
	})
	if err != nil {
		helper.Errorw("msg", "init outbox runner failed", "error", err)
		return nil
	}
	return runner
}

func runnerMeter(cfg outboxcfg.PublisherConfig) metric.Meter {
	if !boolValue(cfg.MetricsEnabled, true) {
		return noopmetric.NewMeterProvider().Meter(meterName)
	}
	return otel.GetMeterProvider().Meter(meterName)
}

// registerBacklogGauge 以异步 Gauge 暴露未发布审计事件数量。
func registerBacklogGauge(meter metric.Meter, repo pendingCounter) error {
	_, err := meter.Int64ObservableGauge(
		"ranking_outbox_pending_events",
		metric.WithDescription("Unpublished ranking audit events in the outbox table"),
		metric.WithInt64Callback(func(ctx context.Context, observer metric.Int64Observer) error {
			pending, err := repo.CountPending(ctx)
			if err != nil {
				return err
			}
			observer.Observe(pending)
			return nil
		}),
	)
	return err
}

func boolValue(ptr *bool, def bool) bool {
	if ptr == nil {
		return def
	}
	return *ptr
}
