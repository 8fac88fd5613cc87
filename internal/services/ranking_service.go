package services

import (
	"context"
	"sort"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/models/vo"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// 分页约束。
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// RankInput 描述个性化排序请求。
type RankInput struct {
	UserID        *uuid.UUID
	CategoryID    *uuid.UUID
	CurrentItemID *uuid.UUID
	Page          int
	PageSize      int
}

// TrendingInput 描述热门榜请求。
type TrendingInput struct {
	Page     int
	PageSize int
}

// RankingService 只读排序流水线：候选、打分、排序、分页、关联展示信息。
type RankingService struct {
	catalog  *CatalogView
	affinity *AffinityStore
	scorer   *Scorer
	cache    TrendingCache
	metrics  *rankingMetrics
	log      *log.Helper
}

// NewRankingService 构造 RankingService；cache 可为 nil。
func NewRankingService(catalog *CatalogView, affinity *AffinityStore, scorer *Scorer, cache TrendingCache, logger log.Logger) *RankingService {
	return &RankingService{
		catalog:  catalog,
		affinity: affinity,
		scorer:   scorer,
		cache:    cache,
		metrics:  sharedRankingMetrics(),
		log:      log.NewHelper(logger),
	}
}

// ValidatePage 校验分页参数：小于 1 拒绝，超过上限钳制为 MaxPageSize。
func ValidatePage(page, pageSize int) (int, int, error) {
	if page < 1 {
		return 0, 0, invalidArgument("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return 0, 0, invalidArgument("page_size must be >= 1, got %d", pageSize)
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize, nil
}

type scoredItem struct {
	item  *po.CatalogItem
	score float64
}

// Rank 返回指定用户（可匿名）的排序结果页。
func (s *RankingService) Rank(ctx context.Context, input RankInput) (result *vo.RankedPage, err error) {
	started := time.Now()
	candidates := 0
	mode := "fallback"
	defer func() { s.metrics.recordRank(ctx, mode, started, candidates, err) }()

	page, pageSize, err := ValidatePage(input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}

	var profile *po.AffinityProfile
	if input.UserID != nil && *input.UserID != uuid.Nil {
		profile, err = s.affinity.Get(ctx, *input.UserID)
		if err != nil {
			return nil, err
		}
	}

	filter := CandidateFilter{
		CategoryID:    input.CategoryID,
		ExcludeItemID: input.CurrentItemID,
	}
	if profile != nil {
		mode = "personalized"
		filter.ExcludeIDs = profile.WatchedItemIDs()
	}

	items, total, err := s.loadCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}
	candidates = len(items)

	scored := make([]scoredItem, len(items))
	for i, item := range items {
		var score float64
		if profile != nil {
			score = s.scorer.Personalized(item, profile)
		} else {
			score = s.scorer.Fallback(item)
		}
		scored[i] = scoredItem{item: item, score: score}
	}

	result, err = s.buildPage(ctx, scored, total, page, pageSize)
	if err != nil {
		return nil, err
	}
	result.Personalized = profile != nil
	return result, nil
}

// Trending 返回与用户无关的热门榜结果页。
func (s *RankingService) Trending(ctx context.Context, input TrendingInput) (result *vo.RankedPage, err error) {
	started := time.Now()
	candidates := 0
	defer func() { s.metrics.recordRank(ctx, "trending", started, candidates, err) }()

	page, pageSize, err := ValidatePage(input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, page, pageSize); ok {
			s.metrics.recordCache(ctx, true)
			return cached, nil
		}
		s.metrics.recordCache(ctx, false)
	}

	items, total, err := s.loadCandidates(ctx, CandidateFilter{})
	if err != nil {
		return nil, err
	}
	candidates = len(items)

	scored := make([]scoredItem, len(items))
	for i, item := range items {
		scored[i] = scoredItem{item: item, score: s.scorer.Trending(item)}
	}

	result, err = s.buildPage(ctx, scored, total, page, pageSize)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, page, pageSize, result)
	}
	return result, nil
}

// GetProfile 返回用户偏好档案的只读视图。
func (s *RankingService) GetProfile(ctx context.Context, userID uuid.UUID) (*vo.AffinityProfile, error) {
	if userID == uuid.Nil {
		return nil, invalidArgument("user_id is required")
	}
	profile, err := s.affinity.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return vo.NewAffinityProfileFromPO(profile), nil
}

// loadCandidates 并发拉取候选集与总数，任一失败则整体失败。
func (s *RankingService) loadCandidates(ctx context.Context, filter CandidateFilter) ([]*po.CatalogItem, int64, error) {
	var (
		items []*po.CatalogItem
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.catalog.Candidates(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.catalog.CountMatching(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if total != int64(len(items)) {
		s.log.WithContext(ctx).Debugf("catalog count drifted: count=%d scored=%d", total, len(items))
		total = int64(len(items))
	}
	return items, total, nil
}

// pageWindow 返回第 page 页在长度为 n 的结果中的 [start, end)，超出末页时为空区间。
// 先比较页序号再相乘，page 取极大值时不会溢出。
func pageWindow(n, page, pageSize int) (int, int) {
	if page < 1 || pageSize < 1 {
		return n, n
	}
	if page-1 >= (n+pageSize-1)/pageSize {
		return n, n
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > n {
		end = n
	}
	return start, end
}

// buildPage 排序、切片并关联当前页的作者与分类信息。
func (s *RankingService) buildPage(ctx context.Context, scored []scoredItem, total int64, page, pageSize int) (*vo.RankedPage, error) {
	sort.Slice(scored, func(i, j int) bool {
		return LessRanked(scored[i].item, scored[j].item, scored[i].score, scored[j].score)
	})

	start, end := pageWindow(len(scored), page, pageSize)
	window := scored[start:end]

	result := &vo.RankedPage{
		Items:      make([]vo.RankedItem, 0, len(window)),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages(total, pageSize),
	}
	if len(window) == 0 {
		return result, nil
	}

	owners, categories, err := s.loadTaxonomy(ctx, window)
	if err != nil {
		return nil, err
	}
	for _, entry := range window {
		owner, ok := owners[entry.item.OwnerID]
		if !ok {
			s.log.WithContext(ctx).Warnf("owner %s missing for item %s", entry.item.OwnerID, entry.item.ID)
			owner = po.OwnerSummary{ID: entry.item.OwnerID}
		}
		result.Items = append(result.Items, vo.RankedItem{
			Item:         entry.item,
			Score:        entry.score,
			Owner:        owner,
			CategoryName: categories[entry.item.CategoryID].Name,
		})
	}
	return result, nil
}

func (s *RankingService) loadTaxonomy(ctx context.Context, window []scoredItem) (map[uuid.UUID]po.OwnerSummary, map[uuid.UUID]po.CategorySummary, error) {
	ownerIDs := make([]uuid.UUID, 0, len(window))
	categoryIDs := make([]uuid.UUID, 0, len(window))
	seenOwners := make(map[uuid.UUID]struct{}, len(window))
	seenCategories := make(map[uuid.UUID]struct{}, len(window))
	for _, entry := range window {
		if _, ok := seenOwners[entry.item.OwnerID]; !ok {
			seenOwners[entry.item.OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, entry.item.OwnerID)
		}
		if _, ok := seenCategories[entry.item.CategoryID]; !ok {
			seenCategories[entry.item.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, entry.item.CategoryID)
		}
	}

	var (
		owners     map[uuid.UUID]po.OwnerSummary
		categories map[uuid.UUID]po.CategorySummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owners, err = s.catalog.Owners(gctx, ownerIDs)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.catalog.Categories(gctx, categoryIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return owners, categories, nil
}

func totalPages(total int64, pageSize int) int64 {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}
