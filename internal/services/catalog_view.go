package services

import (
	"context"
	"errors"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// CandidateFilter 描述候选集过滤条件，资格过滤始终生效。
type CandidateFilter struct {
	CategoryID    *uuid.UUID
	ExcludeItemID *uuid.UUID
	ExcludeIDs    []uuid.UUID
}

func (f CandidateFilter) repoFilter() repositories.CatalogFilter {
	exclude := make([]uuid.UUID, 0, len(f.ExcludeIDs)+1)
	seen := make(map[uuid.UUID]struct{}, len(f.ExcludeIDs)+1)
	add := func(id uuid.UUID) {
		if id == uuid.Nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		exclude = append(exclude, id)
	}
	for _, id := range f.ExcludeIDs {
		add(id)
	}
	if f.ExcludeItemID != nil {
		add(*f.ExcludeItemID)
	}
	return repositories.CatalogFilter{CategoryID: f.CategoryID, ExcludeIDs: exclude}
}

// CatalogView 封装目录读取：超时、熔断与分批拉取。
type CatalogView struct {
	repo      CatalogRepository
	breaker   *gobreaker.CircuitBreaker[any]
	timeout   time.Duration
	batchSize int
	log       *log.Helper
}

// NewCatalogView 构造 CatalogView。
func NewCatalogView(repo CatalogRepository, opts Options, logger log.Logger) *CatalogView {
	opts = opts.withDefaults()
	helper := log.NewHelper(logger)
	view := &CatalogView{
		repo:      repo,
		timeout:   opts.CatalogTimeout,
		batchSize: opts.CandidateBatchSize,
		log:       helper,
	}
	if opts.Breaker.Enabled {
		threshold := opts.Breaker.FailureThreshold
		view.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        "ranking-catalog",
			MaxRequests: opts.Breaker.MaxRequests,
			Interval:    opts.Breaker.Interval,
			Timeout:     opts.Breaker.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				helper.Warnf("circuit breaker %s: %s -> %s", name, from, to)
			},
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, context.Canceled) ||
					errors.Is(err, repositories.ErrCatalogItemNotFound)
			},
		})
	}
	return view
}

// call 在超时与熔断保护下执行一次目录访问。
func (v *CatalogView) call(ctx context.Context, op string, fn func(context.Context) (any, error)) (any, error) {
	callCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	run := func() (any, error) { return fn(callCtx) }
	var (
		result any
		err    error
	)
	if v.breaker != nil {
		result, err = v.breaker.Execute(run)
	} else {
		result, err = run()
	}
	if err == nil {
		return result, nil
	}
	if errors.Is(err, repositories.ErrCatalogItemNotFound) {
		return nil, err
	}
	v.log.WithContext(ctx).Warnf("catalog %s failed: %v", op, err)
	return nil, dependencyError("catalog "+op, err)
}

// Candidates 以 keyset 分批拉取所有满足过滤条件的合格条目。
func (v *CatalogView) Candidates(ctx context.Context, filter CandidateFilter) ([]*po.CatalogItem, error) {
	repoFilter := filter.repoFilter()
	var (
		items   []*po.CatalogItem
		afterID *uuid.UUID
	)
	for {
		res, err := v.call(ctx, "candidates", func(callCtx context.Context) (any, error) {
			return v.repo.ListEligible(callCtx, nil, repoFilter, afterID, v.batchSize)
		})
		if err != nil {
			return nil, err
		}
		batch, _ := res.([]*po.CatalogItem)
		items = append(items, batch...)
		if len(batch) < v.batchSize {
			return items, nil
		}
		last := batch[len(batch)-1].ID
		afterID = &last
	}
}

// CountMatching 返回与 Candidates 相同谓词下的条目总数。
func (v *CatalogView) CountMatching(ctx context.Context, filter CandidateFilter) (int64, error) {
	repoFilter := filter.repoFilter()
	res, err := v.call(ctx, "count", func(callCtx context.Context) (any, error) {
		return v.repo.CountEligible(callCtx, nil, repoFilter)
	})
	if err != nil {
		return 0, err
	}
	count, _ := res.(int64)
	return count, nil
}

// Item 查询单个条目，不做资格过滤。
func (v *CatalogView) Item(ctx context.Context, itemID uuid.UUID) (*po.CatalogItem, error) {
	res, err := v.call(ctx, "item", func(callCtx context.Context) (any, error) {
		return v.repo.GetItem(callCtx, nil, itemID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrCatalogItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	item, _ := res.(*po.CatalogItem)
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Owners 批量读取作者展示信息。
func (v *CatalogView) Owners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]po.OwnerSummary, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]po.OwnerSummary{}, nil
	}
	res, err := v.call(ctx, "owners", func(callCtx context.Context) (any, error) {
		return v.repo.ListOwners(callCtx, nil, ids)
	})
	if err != nil {
		return nil, err
	}
	owners, _ := res.(map[uuid.UUID]po.OwnerSummary)
	return owners, nil
}

// Categories 批量读取分类名称。
func (v *CatalogView) Categories(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]po.CategorySummary, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]po.CategorySummary{}, nil
	}
	res, err := v.call(ctx, "categories", func(callCtx context.Context) (any, error) {
		return v.repo.ListCategories(callCtx, nil, ids)
	})
	if err != nil {
		return nil, err
	}
	categories, _ := res.(map[uuid.UUID]po.CategorySummary)
	return categories, nil
}
