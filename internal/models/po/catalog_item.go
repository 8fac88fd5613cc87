// Package po 定义 ranking 服务持久化层的行对象。
package po

import (
	"time"

	"github.com/google/uuid"
)

// Visibility 表示目录条目的可见性。
type Visibility string

const (
	// VisibilityPublic 公开，可进入排序与热门。
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate 仅作者可见。
	VisibilityPrivate Visibility = "private"
	// VisibilityUnlisted 持有链接可见，不进入排序。
	VisibilityUnlisted Visibility = "unlisted"
)

// CatalogItem 表示 ranking.catalog_items 的只读快照，附带标签集合。
type CatalogItem struct {
	ID                          uuid.UUID
	OwnerID                     uuid.UUID
	CategoryID                  uuid.UUID
	Title                       string
	TagIDs                      []uuid.UUID
	ViewCount                   int64
	LikeCount                   int64
	AverageWatchDurationSeconds float64
	IsPublished                 bool
	Visibility                  Visibility
	CreatedAt                   time.Time
}

// Eligible 判断条目是否满足已发布且公开的准入条件。
func (i *CatalogItem) Eligible() bool {
	return i != nil && i.IsPublished && i.Visibility == VisibilityPublic
}

// OwnerSummary 表示排序结果中附带的作者展示信息。
type OwnerSummary struct {
	ID          uuid.UUID
	DisplayName string
	AvatarURL   *string
}

// CategorySummary 表示分类展示信息。
type CategorySummary struct {
	ID   uuid.UUID
	Name string
}
