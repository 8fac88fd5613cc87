// Package services 包含排序与偏好学习的业务编排逻辑。
// 该层负责协调 Repository，实现打分、排序与偏好更新规则，不直接依赖传输层或基础设施细节。
package services

import (
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/google/wire"
)

// ProviderSet 暴露 Services 层的构造函数供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(
	ProvideScorer,
	NewCatalogView,
	NewAffinityStore,
	NewRankingService,
	NewPreferenceUpdater,
	wire.Bind(new(CatalogRepository), new(*repositories.CatalogRepository)),
	wire.Bind(new(AffinityRepository), new(*repositories.AffinityRepository)),
	wire.Bind(new(LikeLedger), new(*repositories.InteractionLikesRepository)),
	wire.Bind(new(OutboxEnqueuer), new(*repositories.OutboxRepository)),
	wire.Bind(new(TrendingCache), new(*repositories.TrendingCacheRepository)),
	wire.Bind(new(RankingServiceInterface), new(*RankingService)),
	wire.Bind(new(PreferenceUpdaterInterface), new(*PreferenceUpdater)),
)

// ProvideScorer 使用配置中的打分权重与系统时钟构造 Scorer。
func ProvideScorer(opts Options) *Scorer {
	return NewScorer(opts.Scoring, nil)
}
