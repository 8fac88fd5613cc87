// Package httpserver 负责装配入站 HTTP Server 及其中间件栈。
package httpserver

import (
	"net/http"

	"github.com/bionicotaku/lingo-services-ranking/internal/controllers"
	configloader "github.com/bionicotaku/lingo-services-ranking/internal/infrastructure/configloader"

	obsTrace "github.com/bionicotaku/lingo-utils/observability/tracing"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/metadata"
	"github.com/go-kratos/kratos/v2/middleware/metrics"
	"github.com/go-kratos/kratos/v2/middleware/ratelimit"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"go.opentelemetry.io/otel"
)

const (
	meterName            = "lingo-services-ranking.http"
	requestsCounterName  = "server_requests_code_total"
	secondsHistogramName = "server_requests_seconds"
	healthPath           = "/healthz"
)

// NewHTTPServer 构造配置完整的 Kratos HTTP Server 实例。
//
// 中间件链（按执行顺序）：
// 1. obsTrace.Server() - OpenTelemetry 追踪
// 2. recovery.Recovery() - Panic 恢复
// 3. metadata.Server() - 转发配置的 header 前缀
// 4. ratelimit.Server() - 限流保护
// 5. metrics.Server() - 请求计数与耗时（metricsCfg.HTTPEnabled 控制）
// 6. logging.Server() - 结构化访问日志
func NewHTTPServer(cfg configloader.ServerConfig, metricsCfg configloader.MetricsConfig, handler *controllers.RankingHandler, logger log.Logger) *khttp.Server {
	mws := []middleware.Middleware{
		obsTrace.Server(),
		recovery.Recovery(),
		metadata.Server(metadata.WithPropagatedPrefix(cfg.MetadataKeys...)),
		ratelimit.Server(),
	}
	if metricsCfg.HTTPEnabled {
		if mw, err := newMetricsMiddleware(); err != nil {
			log.NewHelper(logger).Warnf("skip http metrics middleware: %v", err)
		} else {
			mws = append(mws, mw)
		}
	}
	mws = append(mws, logging.Server(logger))

	opts := []khttp.ServerOption{
		khttp.Middleware(mws...),
	}
	if cfg.Network != "" {
		opts = append(opts, khttp.Network(cfg.Network))
	}
	if cfg.Address != "" {
		opts = append(opts, khttp.Address(cfg.Address))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, khttp.Timeout(cfg.Timeout))
	}
	srv := khttp.NewServer(opts...)
	srv.HandleFunc(healthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if handler != nil {
		controllers.RegisterRoutes(srv, handler)
	}
	return srv
}

// newMetricsMiddleware 基于全局 MeterProvider 构造 Kratos 指标中间件。
func newMetricsMiddleware() (middleware.Middleware, error) {
	meter := otel.GetMeterProvider().Meter(meterName)
	requests, err := metrics.DefaultRequestsCounter(meter, requestsCounterName)
	if err != nil {
		return nil, err
	}
	seconds, err := metrics.DefaultSecondsHistogram(meter, secondsHistogramName)
	if err != nil {
		return nil, err
	}
	return metrics.Server(
		metrics.WithRequests(requests),
		metrics.WithSeconds(seconds),
	), nil
}
