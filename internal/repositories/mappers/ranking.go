// Package mappers 负责 rankingdb 行对象与领域对象之间的转换。
package mappers

import (
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories/rankingdb"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CatalogItemFromRow 转换目录条目。
func CatalogItemFromRow(row rankingdb.CatalogItemRow) *po.CatalogItem {
	tags := row.TagIds
	if tags == nil {
		tags = []uuid.UUID{}
	}
	return &po.CatalogItem{
		ID:                          row.ItemID,
		OwnerID:                     row.OwnerID,
		CategoryID:                  row.CategoryID,
		Title:                       row.Title,
		TagIDs:                      tags,
		ViewCount:                   row.ViewCount,
		LikeCount:                   row.LikeCount,
		AverageWatchDurationSeconds: row.AverageWatchDurationSeconds,
		IsPublished:                 row.IsPublished,
		Visibility:                  po.Visibility(row.Visibility),
		CreatedAt:                   mustTimestamp(row.CreatedAt),
	}
}

// OwnerSummaryFromRow 转换作者展示信息。
func OwnerSummaryFromRow(row rankingdb.RankingOwner) po.OwnerSummary {
	return po.OwnerSummary{
		ID:          row.OwnerID,
		DisplayName: row.DisplayName,
		AvatarURL:   textPtr(row.AvatarUrl),
	}
}

// CategorySummaryFromRow 转换分类展示信息。
func CategorySummaryFromRow(row rankingdb.RankingCategory) po.CategorySummary {
	return po.CategorySummary{ID: row.CategoryID, Name: row.Name}
}

// AffinityProfileFromRows 组装偏好档案。
func AffinityProfileFromRows(
	head rankingdb.RankingAffinityProfile,
	categories []rankingdb.RankingAffinityWeight,
	tags []rankingdb.RankingAffinityWeight,
	history []rankingdb.RankingAffinityWatchHistory,
) *po.AffinityProfile {
	profile := &po.AffinityProfile{
		UserID:          head.UserID,
		CategoryWeights: make(map[uuid.UUID]float64, len(categories)),
		TagWeights:      make(map[uuid.UUID]float64, len(tags)),
		WatchHistory:    make([]po.WatchEntry, 0, len(history)),
		Version:         head.Version,
		CreatedAt:       mustTimestamp(head.CreatedAt),
		LastUpdatedAt:   mustTimestamp(head.LastUpdatedAt),
	}
	for _, c := range categories {
		profile.CategoryWeights[c.ID] = c.Weight
	}
	for _, t := range tags {
		profile.TagWeights[t.ID] = t.Weight
	}
	for _, h := range history {
		profile.WatchHistory = append(profile.WatchHistory, po.WatchEntry{
			ItemID:               h.ItemID,
			WatchCount:           h.WatchCount,
			TotalDurationSeconds: h.TotalDurationSeconds,
			LastWatchedAt:        mustTimestamp(h.LastWatchedAt),
		})
	}
	return profile
}

// ToPgUUIDPtr 将可选 UUID 转换为 pgtype.UUID。
func ToPgUUIDPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil || *id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// ToPgTimestamptz 转换时间。
func ToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

// ToPgText 转换可选字符串。
func ToPgText(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *value, Valid: true}
}

func textPtr(value pgtype.Text) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func mustTimestamp(value pgtype.Timestamptz) time.Time {
	if !value.Valid {
		return time.Time{}
	}
	return value.Time.UTC()
}
