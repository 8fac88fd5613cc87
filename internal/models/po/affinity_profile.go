package po

import (
	"time"

	"github.com/google/uuid"
)

// AffinityProfile 表示用户偏好档案：分类/标签权重与观看历史。
type AffinityProfile struct {
	UserID          uuid.UUID
	CategoryWeights map[uuid.UUID]float64
	TagWeights      map[uuid.UUID]float64
	WatchHistory    []WatchEntry
	Version         int64
	CreatedAt       time.Time
	LastUpdatedAt   time.Time
}

// WatchEntry 表示观看历史中的单个条目，按 ItemID 唯一。
type WatchEntry struct {
	ItemID               uuid.UUID
	WatchCount           int64
	TotalDurationSeconds float64
	LastWatchedAt        time.Time
}

// NewAffinityProfile 构造空档案。
func NewAffinityProfile(userID uuid.UUID, now time.Time) *AffinityProfile {
	return &AffinityProfile{
		UserID:          userID,
		CategoryWeights: map[uuid.UUID]float64{},
		TagWeights:      map[uuid.UUID]float64{},
		CreatedAt:       now,
		LastUpdatedAt:   now,
	}
}

// Clone 返回深拷贝，变更副本不会影响原快照。
func (p *AffinityProfile) Clone() *AffinityProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.CategoryWeights = make(map[uuid.UUID]float64, len(p.CategoryWeights))
	for k, v := range p.CategoryWeights {
		out.CategoryWeights[k] = v
	}
	out.TagWeights = make(map[uuid.UUID]float64, len(p.TagWeights))
	for k, v := range p.TagWeights {
		out.TagWeights[k] = v
	}
	out.WatchHistory = append([]WatchEntry(nil), p.WatchHistory...)
	return &out
}

// WatchedItemIDs 返回观看历史中的条目 ID。
func (p *AffinityProfile) WatchedItemIDs() []uuid.UUID {
	if p == nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(p.WatchHistory))
	for _, entry := range p.WatchHistory {
		ids = append(ids, entry.ItemID)
	}
	return ids
}

// FindWatch 返回指定条目的观看记录下标，不存在返回 -1。
func (p *AffinityProfile) FindWatch(itemID uuid.UUID) int {
	if p == nil {
		return -1
	}
	for i := range p.WatchHistory {
		if p.WatchHistory[i].ItemID == itemID {
			return i
		}
	}
	return -1
}
