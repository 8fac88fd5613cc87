package services

import "time"

// UnlikePolicy 决定 UNLIKE 如何回退 LIKE 带来的权重。
type UnlikePolicy string

const (
	// UnlikePolicyDecrement 对称扣减 LIKE 增加的权重，低于初始值时移除条目。
	UnlikePolicyDecrement UnlikePolicy = "decrement"
	// UnlikePolicyRemove 直接删除相关分类与标签条目。
	UnlikePolicyRemove UnlikePolicy = "remove"
)

// ScoringWeights 个性化打分的可选附加项，默认均为 0（基础公式）。
type ScoringWeights struct {
	WatchDurationWeight float64
	RecencyWeekWeight   float64
}

// BreakerOptions 目录访问熔断参数。
type BreakerOptions struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	OpenTimeout      time.Duration
	FailureThreshold uint32
}

// Options 汇总排序与偏好更新的运行参数。
type Options struct {
	Scoring            ScoringWeights
	CandidateBatchSize int
	CatalogTimeout     time.Duration
	AffinityTimeout    time.Duration
	MaxRetries         int
	UnlikePolicy       UnlikePolicy
	MaxCategoryEntries int
	MaxTagEntries      int
	MaxWatchHistory    int
	Breaker            BreakerOptions
}

// DefaultOptions 返回未配置时使用的默认值。
func DefaultOptions() Options {
	return Options{
		CandidateBatchSize: 1000,
		CatalogTimeout:     2 * time.Second,
		AffinityTimeout:    2 * time.Second,
		MaxRetries:         3,
		UnlikePolicy:       UnlikePolicyDecrement,
		MaxWatchHistory:    500,
		Breaker: BreakerOptions{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			OpenTimeout:      10 * time.Second,
			FailureThreshold: 5,
		},
	}
}

// withDefaults 将零值字段替换为默认值。
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.CandidateBatchSize <= 0 {
		o.CandidateBatchSize = def.CandidateBatchSize
	}
	if o.CatalogTimeout <= 0 {
		o.CatalogTimeout = def.CatalogTimeout
	}
	if o.AffinityTimeout <= 0 {
		o.AffinityTimeout = def.AffinityTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = def.MaxRetries
	}
	if o.UnlikePolicy == "" {
		o.UnlikePolicy = def.UnlikePolicy
	}
	if o.MaxWatchHistory <= 0 {
		o.MaxWatchHistory = def.MaxWatchHistory
	}
	if o.Breaker.MaxRequests == 0 {
		o.Breaker.MaxRequests = def.Breaker.MaxRequests
	}
	if o.Breaker.Interval <= 0 {
		o.Breaker.Interval = def.Breaker.Interval
	}
	if o.Breaker.OpenTimeout <= 0 {
		o.Breaker.OpenTimeout = def.Breaker.OpenTimeout
	}
	if o.Breaker.FailureThreshold == 0 {
		o.Breaker.FailureThreshold = def.Breaker.FailureThreshold
	}
	return o
}
