// Package configs 定义 configs/config.yaml 的引导结构，由 Kratos config 扫描并经 validator 校验。
package configs

// Bootstrap 为配置文件根节点。
type Bootstrap struct {
	Server        Server        `json:"server" validate:"required"`
	Data          Data          `json:"data" validate:"required"`
	Observability Observability `json:"observability"`
	Messaging     Messaging     `json:"messaging"`
	Ranking       Ranking       `json:"ranking"`
}

// Server 描述入站 HTTP 服务。
type Server struct {
	HTTP         HTTP     `json:"http"`
	Handlers     Handlers `json:"handlers"`
	MetadataKeys []string `json:"metadata_keys"`
}

// HTTP 监听配置。
type HTTP struct {
	Network string `json:"network" validate:"omitempty,oneof=tcp tcp4 tcp6 unix"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout" validate:"omitempty,duration"`
}

// Handlers 控制器超时。
type Handlers struct {
	DefaultTimeout string `json:"default_timeout" validate:"omitempty,duration"`
	CommandTimeout string `json:"command_timeout" validate:"omitempty,duration"`
	QueryTimeout   string `json:"query_timeout" validate:"omitempty,duration"`
}

// Data 聚合存储依赖。
type Data struct {
	Postgres PostgreSQL `json:"postgres" validate:"required"`
	Redis    Redis      `json:"redis"`
}

// PostgreSQL 连接池与事务配置。
type PostgreSQL struct {
	DSN                       string      `json:"dsn" validate:"required"`
	MaxOpenConns              int32       `json:"max_open_conns" validate:"gte=0"`
	MinOpenConns              int32       `json:"min_open_conns" validate:"gte=0"`
	MaxConnLifetime           string      `json:"max_conn_lifetime" validate:"omitempty,duration"`
	MaxConnIdleTime           string      `json:"max_conn_idle_time" validate:"omitempty,duration"`
	HealthCheckPeriod         string      `json:"health_check_period" validate:"omitempty,duration"`
	Schema                    string      `json:"schema"`
	PreparedStatementsEnabled bool        `json:"prepared_statements_enabled"`
	PoolMetricsEnabled        bool        `json:"pool_metrics_enabled"`
	Transaction               Transaction `json:"transaction"`
}

// Transaction 默认事务参数。
type Transaction struct {
	DefaultIsolation string `json:"default_isolation" validate:"omitempty,oneof=read_committed repeatable_read serializable"`
	DefaultTimeout   string `json:"default_timeout" validate:"omitempty,duration"`
	LockTimeout      string `json:"lock_timeout" validate:"omitempty,duration"`
	MaxRetries       int32  `json:"max_retries" validate:"gte=0"`
	MetricsEnabled   bool   `json:"metrics_enabled"`
}

// Redis 热门榜缓存连接，addr 为空时不启用缓存。
type Redis struct {
	Addr         string `json:"addr"`
	Password     string `json:"password"`
	DB           int    `json:"db" validate:"gte=0"`
	DialTimeout  string `json:"dial_timeout" validate:"omitempty,duration"`
	ReadTimeout  string `json:"read_timeout" validate:"omitempty,duration"`
	WriteTimeout string `json:"write_timeout" validate:"omitempty,duration"`
}

// Observability 追踪与指标。
type Observability struct {
	GlobalAttributes map[string]string `json:"global_attributes"`
	Tracing          Tracing           `json:"tracing"`
	Metrics          Metrics           `json:"metrics"`
}

// Tracing OpenTelemetry 追踪导出。
type Tracing struct {
	Enabled            bool              `json:"enabled"`
	Exporter           string            `json:"exporter" validate:"omitempty,oneof=otlp_grpc otlp_http stdout"`
	Endpoint           string            `json:"endpoint"`
	Headers            map[string]string `json:"headers"`
	Insecure           bool              `json:"insecure"`
	SamplingRatio      float64           `json:"sampling_ratio" validate:"gte=0,lte=1"`
	BatchTimeout       string            `json:"batch_timeout" validate:"omitempty,duration"`
	ExportTimeout      string            `json:"export_timeout" validate:"omitempty,duration"`
	MaxQueueSize       int32             `json:"max_queue_size" validate:"gte=0"`
	MaxExportBatchSize int32             `json:"max_export_batch_size" validate:"gte=0"`
	Required           bool              `json:"required"`
	Attributes         map[string]string `json:"attributes"`
}

// Metrics OpenTelemetry 指标导出。
type Metrics struct {
	Enabled             bool              `json:"enabled"`
	Exporter            string            `json:"exporter" validate:"omitempty,oneof=otlp_grpc otlp_http stdout"`
	Endpoint            string            `json:"endpoint"`
	Headers             map[string]string `json:"headers"`
	Insecure            bool              `json:"insecure"`
	Interval            string            `json:"interval" validate:"omitempty,duration"`
	DisableRuntimeStats bool              `json:"disable_runtime_stats"`
	Required            bool              `json:"required"`
	ResourceAttributes  map[string]string `json:"resource_attributes"`
	HTTPEnabled         *bool             `json:"http_enabled"`
}

// Messaging 消息相关配置。
type Messaging struct {
	PubSub       PubSub          `json:"pubsub"`
	Interactions PubSub          `json:"interactions"`
	Outbox       OutboxPublisher `json:"outbox"`
	Inbox        InboxConsumer   `json:"inbox"`
}

// PubSub GCP Pub/Sub 主题或订阅。
type PubSub struct {
	ProjectID           string        `json:"project_id"`
	TopicID             string        `json:"topic_id"`
	SubscriptionID      string        `json:"subscription_id"`
	OrderingKeyEnabled  bool          `json:"ordering_key_enabled"`
	LoggingEnabled      bool          `json:"logging_enabled"`
	MetricsEnabled      bool          `json:"metrics_enabled"`
	EmulatorEndpoint    string        `json:"emulator_endpoint"`
	PublishTimeout      string        `json:"publish_timeout" validate:"omitempty,duration"`
	ExactlyOnceDelivery bool          `json:"exactly_once_delivery"`
	DeadLetterTopicID   string        `json:"dead_letter_topic_id"`
	Receive             PubSubReceive `json:"receive"`
}

// PubSubReceive 订阅拉取参数。
type PubSubReceive struct {
	NumGoroutines          int    `json:"num_goroutines" validate:"gte=0"`
	MaxOutstandingMessages int    `json:"max_outstanding_messages" validate:"gte=0"`
	MaxOutstandingBytes    int    `json:"max_outstanding_bytes" validate:"gte=0"`
	MaxExtension           string `json:"max_extension" validate:"omitempty,duration"`
	MaxExtensionPeriod     string `json:"max_extension_period" validate:"omitempty,duration"`
}

// OutboxPublisher Outbox 发布器。
type OutboxPublisher struct {
	BatchSize      int    `json:"batch_size" validate:"gte=0"`
	TickInterval   string `json:"tick_interval" validate:"omitempty,duration"`
	InitialBackoff string `json:"initial_backoff" validate:"omitempty,duration"`
	MaxBackoff     string `json:"max_backoff" validate:"omitempty,duration"`
	MaxAttempts    int    `json:"max_attempts" validate:"gte=0"`
	PublishTimeout string `json:"publish_timeout" validate:"omitempty,duration"`
	Workers        int    `json:"workers" validate:"gte=0"`
	LockTTL        string `json:"lock_ttl" validate:"omitempty,duration"`
	LoggingEnabled *bool  `json:"logging_enabled"`
	MetricsEnabled *bool  `json:"metrics_enabled"`
}

// InboxConsumer Inbox 消费者。
type InboxConsumer struct {
	SourceService  string `json:"source_service"`
	MaxConcurrency int    `json:"max_concurrency" validate:"gte=0"`
	LoggingEnabled *bool  `json:"logging_enabled"`
	MetricsEnabled *bool  `json:"metrics_enabled"`
}

// Ranking 排序与偏好学习参数。
type Ranking struct {
	Scoring            Scoring       `json:"scoring"`
	Affinity           Affinity      `json:"affinity"`
	Timeouts           Timeouts      `json:"timeouts"`
	TrendingCache      TrendingCache `json:"trending_cache"`
	Breaker            Breaker       `json:"breaker"`
	CandidateBatchSize int           `json:"candidate_batch_size" validate:"gte=0"`
}

// Scoring 个性化打分附加项。
type Scoring struct {
	WatchDurationWeight float64 `json:"watch_duration_weight"`
	RecencyWeekWeight   float64 `json:"recency_week_weight"`
}

// Affinity 偏好档案更新策略。
type Affinity struct {
	UnlikePolicy       string `json:"unlike_policy" validate:"omitempty,oneof=decrement remove"`
	MaxRetries         int    `json:"max_retries" validate:"gte=0"`
	MaxCategoryEntries int    `json:"max_category_entries" validate:"gte=0"`
	MaxTagEntries      int    `json:"max_tag_entries" validate:"gte=0"`
	MaxWatchHistory    int    `json:"max_watch_history" validate:"gte=0"`
}

// Timeouts 依赖调用超时。
type Timeouts struct {
	Catalog  string `json:"catalog" validate:"omitempty,duration"`
	Affinity string `json:"affinity" validate:"omitempty,duration"`
}

// TrendingCache 热门榜缓存。
type TrendingCache struct {
	TTL string `json:"ttl" validate:"omitempty,duration"`
}

// Breaker 目录访问熔断。
type Breaker struct {
	Enabled          *bool  `json:"enabled"`
	MaxRequests      uint32 `json:"max_requests"`
	Interval         string `json:"interval" validate:"omitempty,duration"`
	OpenTimeout      string `json:"open_timeout" validate:"omitempty,duration"`
	FailureThreshold uint32 `json:"failure_threshold"`
}
