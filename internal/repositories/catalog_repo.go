package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories/mappers"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories/rankingdb"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCatalogItemNotFound 表示目录条目不存在。
var ErrCatalogItemNotFound = errors.New("catalog item not found")

// CatalogFilter 描述准入之外的可选过滤条件。准入条件（已发布且公开）总是生效。
type CatalogFilter struct {
	CategoryID *uuid.UUID
	ExcludeIDs []uuid.UUID
}

// CatalogRepository 访问 ranking.catalog_items 及分类/作者展示数据。
type CatalogRepository struct {
	db      *pgxpool.Pool
	queries *rankingdb.Queries
	log     *log.Helper
}

// NewCatalogRepository 构造仓储实例。
func NewCatalogRepository(db *pgxpool.Pool, logger log.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:      db,
		queries: rankingdb.New(db),
		log:     log.NewHelper(logger),
	}
}

func (r *CatalogRepository) q(sess txmanager.Session) *rankingdb.Queries {
	if sess != nil {
		return r.queries.WithTx(sess.Tx())
	}
	return r.queries
}

// ListEligible 按 item_id 升序返回 afterID 之后的一批准入条目。
func (r *CatalogRepository) ListEligible(ctx context.Context, sess txmanager.Session, filter CatalogFilter, afterID *uuid.UUID, limit int) ([]*po.CatalogItem, error) {
	rows, err := r.q(sess).ListEligibleItems(ctx, rankingdb.ListEligibleItemsParams{
		CategoryID: mappers.ToPgUUIDPtr(filter.CategoryID),
		ExcludeIds: nonNilIDs(filter.ExcludeIDs),
		AfterID:    mappers.ToPgUUIDPtr(afterID),
		Limit:      int32(limit),
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("list eligible items failed: err=%v", err)
		return nil, fmt.Errorf("list eligible items: %w", err)
	}
	items := make([]*po.CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mappers.CatalogItemFromRow(row))
	}
	return items, nil
}

// CountEligible 返回与 ListEligible 相同过滤条件下的条目总数。
func (r *CatalogRepository) CountEligible(ctx context.Context, sess txmanager.Session, filter CatalogFilter) (int64, error) {
	count, err := r.q(sess).CountEligibleItems(ctx, rankingdb.CountEligibleItemsParams{
		CategoryID: mappers.ToPgUUIDPtr(filter.CategoryID),
		ExcludeIds: nonNilIDs(filter.ExcludeIDs),
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("count eligible items failed: err=%v", err)
		return 0, fmt.Errorf("count eligible items: %w", err)
	}
	return count, nil
}

// GetItem 返回单个条目，不做准入过滤。
func (r *CatalogRepository) GetItem(ctx context.Context, sess txmanager.Session, itemID uuid.UUID) (*po.CatalogItem, error) {
	row, err := r.q(sess).GetCatalogItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return mappers.CatalogItemFromRow(row), nil
}

// ListOwners 批量读取作者展示信息，缺失的作者不出现在结果中。
func (r *CatalogRepository) ListOwners(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) (map[uuid.UUID]po.OwnerSummary, error) {
	result := make(map[uuid.UUID]po.OwnerSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.q(sess).ListOwnersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	for _, row := range rows {
		result[row.OwnerID] = mappers.OwnerSummaryFromRow(row)
	}
	return result, nil
}

// ListCategories 批量读取分类展示信息。
func (r *CatalogRepository) ListCategories(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) (map[uuid.UUID]po.CategorySummary, error) {
	result := make(map[uuid.UUID]po.CategorySummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.q(sess).ListCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for _, row := range rows {
		result[row.CategoryID] = mappers.CategorySummaryFromRow(row)
	}
	return result, nil
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
