package services

import (
	"context"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/models/vo"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// CatalogRepository 抽象目录只读访问。
type CatalogRepository interface {
	ListEligible(ctx context.Context, sess txmanager.Session, filter repositories.CatalogFilter, afterID *uuid.UUID, limit int) ([]*po.CatalogItem, error)
	CountEligible(ctx context.Context, sess txmanager.Session, filter repositories.CatalogFilter) (int64, error)
	GetItem(ctx context.Context, sess txmanager.Session, itemID uuid.UUID) (*po.CatalogItem, error)
	ListOwners(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) (map[uuid.UUID]po.OwnerSummary, error)
	ListCategories(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) (map[uuid.UUID]po.CategorySummary, error)
}

// AffinityRepository 抽象偏好档案持久化。
type AffinityRepository interface {
	Ensure(ctx context.Context, sess txmanager.Session, userID uuid.UUID, now time.Time) error
	Load(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.AffinityProfile, error)
	Save(ctx context.Context, sess txmanager.Session, before, after *po.AffinityProfile) (int64, error)
}

// LikeLedger 记录用户对条目的点赞，保证每个 (user,item) 至多一次。
type LikeLedger interface {
	Record(ctx context.Context, sess txmanager.Session, userID, itemID uuid.UUID, likedAt time.Time) (bool, error)
	Remove(ctx context.Context, sess txmanager.Session, userID, itemID uuid.UUID) (bool, error)
}

// OutboxEnqueuer 抽象 Outbox 写入。
type OutboxEnqueuer interface {
	Enqueue(ctx context.Context, sess txmanager.Session, msg repositories.OutboxMessage) error
}

// TrendingCache 缓存热门榜分页结果，实现可选。
type TrendingCache interface {
	Get(ctx context.Context, page, pageSize int) (*vo.RankedPage, bool)
	Set(ctx context.Context, page, pageSize int, result *vo.RankedPage)
}

// RankingServiceInterface 抽象排序用例，便于控制层测试替换。
type RankingServiceInterface interface {
	Rank(ctx context.Context, input RankInput) (*vo.RankedPage, error)
	Trending(ctx context.Context, input TrendingInput) (*vo.RankedPage, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*vo.AffinityProfile, error)
}

// PreferenceUpdaterInterface 抽象互动写入用例。
type PreferenceUpdaterInterface interface {
	Apply(ctx context.Context, input ApplyInput) (*ApplyResult, error)
}

var (
	_ CatalogRepository          = (*repositories.CatalogRepository)(nil)
	_ AffinityRepository         = (*repositories.AffinityRepository)(nil)
	_ LikeLedger                 = (*repositories.InteractionLikesRepository)(nil)
	_ OutboxEnqueuer             = (*repositories.OutboxRepository)(nil)
	_ RankingServiceInterface    = (*RankingService)(nil)
	_ PreferenceUpdaterInterface = (*PreferenceUpdater)(nil)
)
