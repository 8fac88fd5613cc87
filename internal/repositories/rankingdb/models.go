package rankingdb

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CatalogItemRow 是目录条目及其标签集合。
type CatalogItemRow struct {
	ItemID                      uuid.UUID
	OwnerID                     uuid.UUID
	CategoryID                  uuid.UUID
	Title                       string
	ViewCount                   int64
	LikeCount                   int64
	AverageWatchDurationSeconds float64
	IsPublished                 bool
	Visibility                  string
	CreatedAt                   pgtype.Timestamptz
	TagIds                      []uuid.UUID
}

// RankingOwner 对应 ranking.owners。
type RankingOwner struct {
	OwnerID     uuid.UUID
	DisplayName string
	AvatarUrl   pgtype.Text
}

// RankingCategory 对应 ranking.categories。
type RankingCategory struct {
	CategoryID uuid.UUID
	Name       string
}

// RankingAffinityProfile 对应 ranking.affinity_profiles。
type RankingAffinityProfile struct {
	UserID        uuid.UUID
	Version       int64
	CreatedAt     pgtype.Timestamptz
	LastUpdatedAt pgtype.Timestamptz
}

// RankingAffinityWeight 是分类或标签权重行。
type RankingAffinityWeight struct {
	ID     uuid.UUID
	Weight float64
}

// RankingAffinityWatchHistory 对应 ranking.affinity_watch_history。
type RankingAffinityWatchHistory struct {
	ItemID               uuid.UUID
	WatchCount           int64
	TotalDurationSeconds float64
	LastWatchedAt        pgtype.Timestamptz
}
