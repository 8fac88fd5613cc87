// Package vo 定义 ranking 服务返回给控制器的视图对象。
package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
)

// RankedItem 表示排序结果中的单个条目。
type RankedItem struct {
	Item         *po.CatalogItem
	Score        float64
	Owner        po.OwnerSummary
	CategoryName string
}

// RankedPage 表示一页排序结果与分页元信息。
type RankedPage struct {
	Items        []RankedItem
	Page         int
	PageSize     int
	TotalItems   int64
	TotalPages   int64
	Personalized bool
}

// AffinityProfile 表示偏好档案的只读视图。
type AffinityProfile struct {
	UserID          string
	CategoryWeights map[string]float64
	TagWeights      map[string]float64
	WatchHistory    []WatchEntry
	Version         int64
	LastUpdatedAt   time.Time
}

// WatchEntry 表示观看历史条目视图。
type WatchEntry struct {
	ItemID               string
	WatchCount           int64
	TotalDurationSeconds float64
	LastWatchedAt        time.Time
}

// NewAffinityProfileFromPO 将持久化档案转换为视图对象。
func NewAffinityProfileFromPO(profile *po.AffinityProfile) *AffinityProfile {
	if profile == nil {
		return nil
	}
	view := &AffinityProfile{
		UserID:          profile.UserID.String(),
		CategoryWeights: make(map[string]float64, len(profile.CategoryWeights)),
		TagWeights:      make(map[string]float64, len(profile.TagWeights)),
		WatchHistory:    make([]WatchEntry, 0, len(profile.WatchHistory)),
		Version:         profile.Version,
		LastUpdatedAt:   profile.LastUpdatedAt,
	}
	for id, weight := range profile.CategoryWeights {
		view.CategoryWeights[id.String()] = weight
	}
	for id, weight := range profile.TagWeights {
		view.TagWeights[id.String()] = weight
	}
	for _, entry := range profile.WatchHistory {
		view.WatchHistory = append(view.WatchHistory, WatchEntry{
			ItemID:               entry.ItemID.String(),
			WatchCount:           entry.WatchCount,
			TotalDurationSeconds: entry.TotalDurationSeconds,
			LastWatchedAt:        entry.LastWatchedAt,
		})
	}
	return view
}
