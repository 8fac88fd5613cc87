package configloader

import (
	"time"

	"github.com/bionicotaku/lingo-services-ranking/configs"
)

const (
	defaultHandlerTimeout = 5 * time.Second
	defaultQueryTimeout   = 3 * time.Second
)

func fromBootstrap(b *configs.Bootstrap) RuntimeConfig {
	if b == nil {
		return RuntimeConfig{}
	}
	return RuntimeConfig{
		Server:        serverFromBootstrap(b.Server),
		Database:      databaseFromBootstrap(b.Data.Postgres),
		Redis:         redisFromBootstrap(b.Data.Redis),
		Observability: observabilityFromBootstrap(b.Observability),
		Messaging:     messagingFromBootstrap(b.Messaging, b.Data.Postgres),
		Ranking:       rankingFromBootstrap(b.Ranking),
	}
}

func serverFromBootstrap(s configs.Server) ServerConfig {
	return ServerConfig{
		Network:      s.HTTP.Network,
		Address:      s.HTTP.Addr,
		Timeout:      parseDuration(s.HTTP.Timeout),
		Handlers:     handlerTimeoutFromBootstrap(s.Handlers),
		MetadataKeys: append([]string(nil), s.MetadataKeys...),
	}
}

func handlerTimeoutFromBootstrap(h configs.Handlers) HandlerTimeoutConfig {
	cfg := HandlerTimeoutConfig{
		Default: defaultHandlerTimeout,
		Command: defaultHandlerTimeout,
		Query:   defaultQueryTimeout,
	}
	if d := parseDuration(h.DefaultTimeout); d > 0 {
		cfg.Default = d
	}
	if d := parseDuration(h.CommandTimeout); d > 0 {
		cfg.Command = d
	} else {
		cfg.Command = cfg.Default
	}
	if d := parseDuration(h.QueryTimeout); d > 0 {
		cfg.Query = d
	} else {
		cfg.Query = firstNonZero(cfg.Query, cfg.Default)
	}
	return cfg
}

func databaseFromBootstrap(pg configs.PostgreSQL) DatabaseConfig {
	return DatabaseConfig{
		DSN:               pg.DSN,
		MaxOpenConns:      int(pg.MaxOpenConns),
		MinOpenConns:      int(pg.MinOpenConns),
		MaxConnLifetime:   parseDuration(pg.MaxConnLifetime),
		MaxConnIdleTime:   parseDuration(pg.MaxConnIdleTime),
		HealthCheckPeriod: parseDuration(pg.HealthCheckPeriod),
		Schema:            pg.Schema,
		PreparedStmts:     pg.PreparedStatementsEnabled,
		PoolMetrics:       pg.PoolMetricsEnabled,
		Transaction: TransactionConfig{
			DefaultIsolation: pg.Transaction.DefaultIsolation,
			DefaultTimeout:   parseDuration(pg.Transaction.DefaultTimeout),
			LockTimeout:      parseDuration(pg.Transaction.LockTimeout),
			MaxRetries:       int(pg.Transaction.MaxRetries),
			MetricsEnabled:   pg.Transaction.MetricsEnabled,
		},
	}
}

func redisFromBootstrap(r configs.Redis) RedisConfig {
	return RedisConfig{
		Addr:         r.Addr,
		Password:     r.Password,
		DB:           r.DB,
		DialTimeout:  parseDuration(r.DialTimeout),
		ReadTimeout:  parseDuration(r.ReadTimeout),
		WriteTimeout: parseDuration(r.WriteTimeout),
	}
}

func observabilityFromBootstrap(obs configs.Observability) ObservabilityConfig {
	return ObservabilityConfig{
		GlobalAttributes: mapCopy(obs.GlobalAttributes),
		Tracing:          tracingFromBootstrap(obs.Tracing),
		Metrics:          metricsFromBootstrap(obs.Metrics),
	}
}

func tracingFromBootstrap(t configs.Tracing) TracingConfig {
	return TracingConfig{
		Enabled:            t.Enabled,
		Exporter:           t.Exporter,
		Endpoint:           t.Endpoint,
		Headers:            mapCopy(t.Headers),
		Insecure:           t.Insecure,
		SamplingRatio:      t.SamplingRatio,
		BatchTimeout:       parseDuration(t.BatchTimeout),
		ExportTimeout:      parseDuration(t.ExportTimeout),
		MaxQueueSize:       int(t.MaxQueueSize),
		MaxExportBatchSize: int(t.MaxExportBatchSize),
		Required:           t.Required,
		Attributes:         mapCopy(t.Attributes),
	}
}

func metricsFromBootstrap(m configs.Metrics) MetricsConfig {
	cfg := MetricsConfig{
		Enabled:             m.Enabled,
		Exporter:            m.Exporter,
		Endpoint:            m.Endpoint,
		Headers:             mapCopy(m.Headers),
		Insecure:            m.Insecure,
		Interval:            parseDuration(m.Interval),
		DisableRuntimeStats: m.DisableRuntimeStats,
		Required:            m.Required,
		ResourceAttributes:  mapCopy(m.ResourceAttributes),
		HTTPEnabled:         true,
	}
	if m.HTTPEnabled != nil {
		cfg.HTTPEnabled = *m.HTTPEnabled
	}
	return cfg
}

func messagingFromBootstrap(msg configs.Messaging, pg configs.PostgreSQL) MessagingConfig {
	return MessagingConfig{
		Schema:       pg.Schema,
		PubSub:       pubsubFromBootstrap(msg.PubSub),
		Interactions: pubsubFromBootstrap(msg.Interactions),
		Outbox:       outboxFromBootstrap(msg.Outbox),
		Inbox: InboxConfig{
			SourceService:  msg.Inbox.SourceService,
			MaxConcurrency: msg.Inbox.MaxConcurrency,
			LoggingEnabled: msg.Inbox.LoggingEnabled,
			MetricsEnabled: msg.Inbox.MetricsEnabled,
		},
	}
}

func pubsubFromBootstrap(pb configs.PubSub) PubSubConfig {
	return PubSubConfig{
		ProjectID:           pb.ProjectID,
		TopicID:             pb.TopicID,
		SubscriptionID:      pb.SubscriptionID,
		OrderingKeyEnabled:  pb.OrderingKeyEnabled,
		LoggingEnabled:      pb.LoggingEnabled,
		MetricsEnabled:      pb.MetricsEnabled,
		EmulatorEndpoint:    pb.EmulatorEndpoint,
		PublishTimeout:      parseDuration(pb.PublishTimeout),
		ExactlyOnceDelivery: pb.ExactlyOnceDelivery,
		DeadLetterTopicID:   pb.DeadLetterTopicID,
		Receive: PubSubReceiveConfig{
			NumGoroutines:          pb.Receive.NumGoroutines,
			MaxOutstandingMessages: pb.Receive.MaxOutstandingMessages,
			MaxOutstandingBytes:    pb.Receive.MaxOutstandingBytes,
			MaxExtension:           parseDuration(pb.Receive.MaxExtension),
			MaxExtensionPeriod:     parseDuration(pb.Receive.MaxExtensionPeriod),
		},
	}
}

func outboxFromBootstrap(ob configs.OutboxPublisher) OutboxPublisherConfig {
	return OutboxPublisherConfig{
		BatchSize:      ob.BatchSize,
		TickInterval:   parseDuration(ob.TickInterval),
		InitialBackoff: parseDuration(ob.InitialBackoff),
		MaxBackoff:     parseDuration(ob.MaxBackoff),
		MaxAttempts:    ob.MaxAttempts,
		PublishTimeout: parseDuration(ob.PublishTimeout),
		Workers:        ob.Workers,
		LockTTL:        parseDuration(ob.LockTTL),
		LoggingEnabled: ob.LoggingEnabled,
		MetricsEnabled: ob.MetricsEnabled,
	}
}

func rankingFromBootstrap(r configs.Ranking) RankingConfig {
	cfg := RankingConfig{
		CandidateBatchSize:  r.CandidateBatchSize,
		WatchDurationWeight: r.Scoring.WatchDurationWeight,
		RecencyWeekWeight:   r.Scoring.RecencyWeekWeight,
		UnlikePolicy:        r.Affinity.UnlikePolicy,
		MaxRetries:          r.Affinity.MaxRetries,
		MaxCategoryEntries:  r.Affinity.MaxCategoryEntries,
		MaxTagEntries:       r.Affinity.MaxTagEntries,
		MaxWatchHistory:     r.Affinity.MaxWatchHistory,
		CatalogTimeout:      parseDuration(r.Timeouts.Catalog),
		AffinityTimeout:     parseDuration(r.Timeouts.Affinity),
		TrendingCacheTTL:    parseDuration(r.TrendingCache.TTL),
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      r.Breaker.MaxRequests,
			Interval:         parseDuration(r.Breaker.Interval),
			OpenTimeout:      parseDuration(r.Breaker.OpenTimeout),
			FailureThreshold: r.Breaker.FailureThreshold,
		},
	}
	if r.Breaker.Enabled != nil {
		cfg.Breaker.Enabled = *r.Breaker.Enabled
	}
	return cfg
}

// parseDuration 解析已通过校验的时长字符串，空串返回 0。
func parseDuration(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func mapCopy(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func firstNonZero(durations ...time.Duration) time.Duration {
	for _, d := range durations {
		if d > 0 {
			return d
		}
	}
	return 0
}

func fillDefaults(cfg *RuntimeConfig) {
	defaultKeys := []string{
		"x-apigateway-api-userinfo",
		"x-md-",
		"x-md-idempotency-key",
		"x-request-id",
	}
	if len(cfg.Server.MetadataKeys) == 0 {
		cfg.Server.MetadataKeys = append([]string(nil), defaultKeys...)
	}
	if cfg.Messaging.Schema == "" {
		cfg.Messaging.Schema = "ranking"
	}
	if cfg.Database.Schema == "" {
		cfg.Database.Schema = "ranking"
	}
}
