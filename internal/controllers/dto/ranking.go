// Package dto 定义 HTTP 请求/响应载荷及其与视图对象之间的转换。
package dto

import (
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/vo"
)

// RankedItem 为排序结果中的单个条目。
type RankedItem struct {
	ItemID                      string   `json:"item_id"`
	Title                       string   `json:"title"`
	Score                       float64  `json:"score"`
	OwnerID                     string   `json:"owner_id"`
	OwnerDisplayName            string   `json:"owner_display_name,omitempty"`
	OwnerAvatarURL              *string  `json:"owner_avatar_url,omitempty"`
	CategoryID                  string   `json:"category_id"`
	CategoryName                string   `json:"category_name,omitempty"`
	TagIDs                      []string `json:"tag_ids"`
	ViewCount                   int64    `json:"view_count"`
	LikeCount                   int64    `json:"like_count"`
	AverageWatchDurationSeconds float64  `json:"average_watch_duration_seconds"`
	CreatedAt                   string   `json:"created_at"`
}

// RankedPageResponse 为 feed/trending 接口的响应。
type RankedPageResponse struct {
	Items        []RankedItem `json:"items"`
	Page         int          `json:"page"`
	PageSize     int          `json:"page_size"`
	TotalItems   int64        `json:"total_items"`
	TotalPages   int64        `json:"total_pages"`
	Personalized bool         `json:"personalized"`
}

// RecordInteractionRequest 为互动写入请求体。
type RecordInteractionRequest struct {
	UserID          string   `json:"user_id"`
	ItemID          string   `json:"item_id"`
	Type            string   `json:"type"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	OccurredAt      string   `json:"occurred_at,omitempty"`
	EventID         string   `json:"event_id,omitempty"`
}

// RecordInteractionResponse 为互动写入确认。
type RecordInteractionResponse struct {
	Accepted       bool  `json:"accepted"`
	ProfileVersion int64 `json:"profile_version"`
	WeightsChanged bool  `json:"weights_changed"`
}

// WatchEntry 为档案中的观看记录。
type WatchEntry struct {
	ItemID               string  `json:"item_id"`
	WatchCount           int64   `json:"watch_count"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
	LastWatchedAt        string  `json:"last_watched_at"`
}

// AffinityProfileResponse 为偏好档案诊断读取的响应。
type AffinityProfileResponse struct {
	UserID          string             `json:"user_id"`
	CategoryWeights map[string]float64 `json:"category_weights"`
	TagWeights      map[string]float64 `json:"tag_weights"`
	WatchHistory    []WatchEntry       `json:"watch_history"`
	Version         int64              `json:"version"`
	LastUpdatedAt   string             `json:"last_updated_at"`
}

// ToRankedPageResponse 将视图对象转换为响应。
func ToRankedPageResponse(page *vo.RankedPage) *RankedPageResponse {
	if page == nil {
		return &RankedPageResponse{Items: []RankedItem{}}
	}
	resp := &RankedPageResponse{
		Items:        make([]RankedItem, 0, len(page.Items)),
		Page:         page.Page,
		PageSize:     page.PageSize,
		TotalItems:   page.TotalItems,
		TotalPages:   page.TotalPages,
		Personalized: page.Personalized,
	}
	for _, entry := range page.Items {
		if entry.Item == nil {
			continue
		}
		item := entry.Item
		tags := make([]string, 0, len(item.TagIDs))
		for _, tag := range item.TagIDs {
			tags = append(tags, tag.String())
		}
		resp.Items = append(resp.Items, RankedItem{
			ItemID:                      item.ID.String(),
			Title:                       item.Title,
			Score:                       entry.Score,
			OwnerID:                     item.OwnerID.String(),
			OwnerDisplayName:            entry.Owner.DisplayName,
			OwnerAvatarURL:              entry.Owner.AvatarURL,
			CategoryID:                  item.CategoryID.String(),
			CategoryName:                entry.CategoryName,
			TagIDs:                      tags,
			ViewCount:                   item.ViewCount,
			LikeCount:                   item.LikeCount,
			AverageWatchDurationSeconds: item.AverageWatchDurationSeconds,
			CreatedAt:                   formatTime(item.CreatedAt),
		})
	}
	return resp
}

// ToAffinityProfileResponse 将档案视图转换为响应。
func ToAffinityProfileResponse(profile *vo.AffinityProfile) *AffinityProfileResponse {
	if profile == nil {
		return nil
	}
	resp := &AffinityProfileResponse{
		UserID:          profile.UserID,
		CategoryWeights: profile.CategoryWeights,
		TagWeights:      profile.TagWeights,
		WatchHistory:    make([]WatchEntry, 0, len(profile.WatchHistory)),
		Version:         profile.Version,
		LastUpdatedAt:   formatTime(profile.LastUpdatedAt),
	}
	for _, entry := range profile.WatchHistory {
		resp.WatchHistory = append(resp.WatchHistory, WatchEntry{
			ItemID:               entry.ItemID,
			WatchCount:           entry.WatchCount,
			TotalDurationSeconds: entry.TotalDurationSeconds,
			LastWatchedAt:        formatTime(entry.LastWatchedAt),
		})
	}
	return resp
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
