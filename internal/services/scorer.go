package services

import (
	"bytes"
	"math"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/google/uuid"
)

const (
	baseScore         = 1.0
	categoryFactor    = 10.0
	tagOverlapFactor  = 5.0
	personalViewScale = 2.0

	popularViewScale = 0.4
	popularLikeScale = 0.3
	fallbackAgeScale = 0.3
	trendWatchScale  = 0.3
)

// Scorer 纯函数打分器，时钟可注入以保证测试确定性。
type Scorer struct {
	weights ScoringWeights
	now     func() time.Time
}

// NewScorer 构造 Scorer；now 为空时使用 time.Now。
func NewScorer(weights ScoringWeights, now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{weights: weights, now: now}
}

// Personalized 计算存在偏好档案时的得分。
func (s *Scorer) Personalized(item *po.CatalogItem, profile *po.AffinityProfile) float64 {
	score := baseScore
	score += categoryFactor * profile.CategoryWeights[item.CategoryID]
	score += tagOverlapFactor * float64(preferredTagOverlap(item.TagIDs, profile.TagWeights))
	score += personalViewScale * viewSignal(item.ViewCount)
	if s.weights.WatchDurationWeight != 0 {
		score += s.weights.WatchDurationWeight * item.AverageWatchDurationSeconds
	}
	if s.weights.RecencyWeekWeight != 0 {
		score += s.weights.RecencyWeekWeight * s.ageDays(item.CreatedAt) / 7
	}
	return score
}

// Fallback 计算无偏好档案时的得分：热度与新鲜度混合。
func (s *Scorer) Fallback(item *po.CatalogItem) float64 {
	return popularViewScale*viewSignal(item.ViewCount) +
		popularLikeScale*float64(item.LikeCount) -
		fallbackAgeScale*s.ageDays(item.CreatedAt)
}

// Trending 计算与用户无关的热门得分，不含时间衰减。
func (s *Scorer) Trending(item *po.CatalogItem) float64 {
	return popularViewScale*viewSignal(item.ViewCount) +
		popularLikeScale*float64(item.LikeCount) +
		trendWatchScale*item.AverageWatchDurationSeconds
}

// ageDays 返回条目年龄（天），未来时间钳制为 0。
func (s *Scorer) ageDays(createdAt time.Time) float64 {
	age := s.now().Sub(createdAt)
	if age < 0 {
		return 0
	}
	return age.Hours() / 24
}

func viewSignal(views int64) float64 {
	if views < 0 {
		views = 0
	}
	return math.Log10(float64(views) + 1)
}

// preferredTagOverlap 统计条目标签中有正权重记录的去重数量。
func preferredTagOverlap(tags []uuid.UUID, weights map[uuid.UUID]float64) int {
	if len(tags) == 0 || len(weights) == 0 {
		return 0
	}
	seen := make(map[uuid.UUID]struct{}, len(tags))
	count := 0
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if weights[tag] > 0 {
			count++
		}
	}
	return count
}

// LessRanked 定义排序全序：得分降序，创建时间降序，ID 升序。
func LessRanked(a, b *po.CatalogItem, scoreA, scoreB float64) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
