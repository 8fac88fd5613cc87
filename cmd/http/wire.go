//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

//go:generate go run github.com/google/wire/cmd/wire

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-ranking/internal/controllers"
	configloader "github.com/bionicotaku/lingo-services-ranking/internal/infrastructure/configloader"
	httpserver "github.com/bionicotaku/lingo-services-ranking/internal/infrastructure/http_server"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	"github.com/bionicotaku/lingo-services-ranking/internal/tasks/interactions"
	outboxtasks "github.com/bionicotaku/lingo-services-ranking/internal/tasks/outbox"

	"github.com/bionicotaku/lingo-utils/gclog"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	obswire "github.com/bionicotaku/lingo-utils/observability"
	"github.com/bionicotaku/lingo-utils/pgxpoolx"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2"
	"github.com/google/wire"
)

// wireApp 构建整个 Kratos 应用，分阶段装配依赖。
//
// 依赖注入顺序:
//  1. 配置加载: configloader.ProviderSet 解析配置并派生组件配置（含 Redis 客户端）
//  2. 基础设施: gclog → observability → pgxpoolx → txmanager → gcpubsub
//  3. 业务层: repositories → services → controllers
//  4. 服务器: http_server.ProviderSet 组装 HTTP Server
//  5. 后台任务: outbox 发布器、互动事件消费者（未配置时为 nil）
//  6. 应用: newApp 创建 Kratos App
func wireApp(context.Context, configloader.Params) (*kratos.App, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet, // 配置加载与解析
		gclog.ProviderSet,        // 结构化日志
		obswire.ProviderSet,      // OpenTelemetry 追踪和指标
		pgxpoolx.ProviderSet,     // PostgreSQL 连接池
		txmanager.ProviderSet,    // 事务管理器
		gcpubsub.ProviderSet,     // Pub/Sub 审计事件发布
		httpserver.ProviderSet,   // HTTP Server
		repositories.ProviderSet, // 数据访问层
		services.ProviderSet,     // 排序与偏好学习
		controllers.ProviderSet,  // HTTP handlers
		configloader.ProvideInteractionSubscriber,
		outboxtasks.ProvideRunner,
		interactions.ProvideRunner,
		newApp,
	))
}

// ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
// 依赖注入说明
// ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ 1. 配置加载层 (configloader.ProviderSet)                                │
// └─────────────────────────────────────────────────────────────────────────┘
//
//   - configloader.LoadRuntimeConfig(configloader.Params) (configloader.RuntimeConfig, error)
//       读取 YAML、校验并应用环境变量覆盖。
//   - configloader.ProvideRedisClient(configloader.RedisConfig, log.Logger)
//                                      (*redis.Client, func(), error)
//       热门榜缓存客户端；addr 为空时返回 nil，仓储降级为直读。
//   - configloader.ProvideRankingOptions(configloader.RuntimeConfig) services.Options
//       打分权重、偏好更新策略、依赖超时与熔断参数。
//   - configloader.ProvideInteractionSubscriber(context.Context, configloader.MessagingConfig,
//                                               gcpubsub.Dependencies)
//                                               (configloader.InteractionSubscriber, func(), error)
//       独立的互动事件订阅组件，与审计事件发布组件互不影响。
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ 2. 业务层 (repositories/services/controllers)                           │
// └─────────────────────────────────────────────────────────────────────────┘
//
//   - repositories.NewCatalogRepository / NewAffinityRepository / NewInteractionLikesRepository
//   - repositories.NewTrendingCacheRepository(*redis.Client, TrendingCacheConfig, log.Logger)
//   - repositories.NewOutboxRepository / NewInboxRepository(*pgxpool.Pool, log.Logger, outboxcfg.Config)
//   - services.NewCatalogView → services.NewAffinityStore → services.NewRankingService
//   - services.NewPreferenceUpdater(*CatalogView, *AffinityStore, LikeLedger, OutboxEnqueuer, Options, log.Logger)
//   - controllers.NewRankingHandler(RankingServiceInterface, PreferenceUpdaterInterface, *BaseHandler)
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ 3. 服务器与应用层                                                       │
// └─────────────────────────────────────────────────────────────────────────┘
//
//   - httpserver.NewHTTPServer(configloader.ServerConfig, configloader.MetricsConfig,
//                              *controllers.RankingHandler, log.Logger) *khttp.Server
//   - newApp(*observability.Component, log.Logger, *khttp.Server, configloader.ServiceInfo,
//            *outboxpublisher.Runner, *interactions.Runner) *kratos.App
