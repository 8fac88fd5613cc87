package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/vo"
	"github.com/go-kratos/kratos/v2/log"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const trendingCacheKeyPrefix = "ranking:trending:v1"

// TrendingCacheConfig 缓存参数。
type TrendingCacheConfig struct {
	TTL time.Duration
}

// TrendingCacheRepository 基于 Redis 缓存热门榜分页结果。
// client 为 nil 时缓存被禁用，所有读取均视为未命中。
type TrendingCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    *log.Helper
}

// NewTrendingCacheRepository 构造缓存仓储。
func NewTrendingCacheRepository(client *redis.Client, cfg TrendingCacheConfig, logger log.Logger) *TrendingCacheRepository {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &TrendingCacheRepository{
		client: client,
		ttl:    ttl,
		log:    log.NewHelper(logger),
	}
}

// TrendingCacheKey 返回分页结果的缓存键。
func TrendingCacheKey(page, pageSize int) string {
	return fmt.Sprintf("%s:%d:%d", trendingCacheKeyPrefix, page, pageSize)
}

// Get 读取缓存；未命中或任何错误都返回 false。
func (r *TrendingCacheRepository) Get(ctx context.Context, page, pageSize int) (*vo.RankedPage, bool) {
	if r == nil || r.client == nil {
		return nil, false
	}
	raw, err := r.client.Get(ctx, TrendingCacheKey(page, pageSize)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WithContext(ctx).Warnf("trending cache get failed: %v", err)
		}
		return nil, false
	}
	var result vo.RankedPage
	if err := json.Unmarshal(raw, &result); err != nil {
		r.log.WithContext(ctx).Warnf("trending cache decode failed: %v", err)
		return nil, false
	}
	return &result, true
}

// Set 写入缓存，失败仅记录日志。
func (r *TrendingCacheRepository) Set(ctx context.Context, page, pageSize int, result *vo.RankedPage) {
	if r == nil || r.client == nil || result == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		r.log.WithContext(ctx).Warnf("trending cache encode failed: %v", err)
		return
	}
	if err := r.client.Set(ctx, TrendingCacheKey(page, pageSize), raw, r.ttl).Err(); err != nil {
		r.log.WithContext(ctx).Warnf("trending cache set failed: %v", err)
	}
}
