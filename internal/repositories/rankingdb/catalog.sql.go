package rankingdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const catalogItemColumns = `
    c.item_id,
    c.owner_id,
    c.category_id,
    c.title,
    c.view_count,
    c.like_count,
    c.average_watch_duration_seconds,
    c.is_published,
    c.visibility,
    c.created_at,
    coalesce((
        select array_agg(t.tag_id order by t.tag_id)
        from ranking.catalog_item_tags t
        where t.item_id = c.item_id
    ), '{}')::uuid[] as tag_ids`

const listEligibleItems = `-- name: ListEligibleItems :many
select` + catalogItemColumns + `
from ranking.catalog_items c
where c.is_published
  and c.visibility = 'public'
  and ($1::uuid is null or c.category_id = $1::uuid)
  and not (c.item_id = any(coalesce($2::uuid[], '{}')))
  and ($3::uuid is null or c.item_id > $3::uuid)
order by c.item_id
limit $4
`

// ListEligibleItemsParams 描述准入过滤与键集分页参数。
type ListEligibleItemsParams struct {
	CategoryID pgtype.UUID
	ExcludeIds []uuid.UUID
	AfterID    pgtype.UUID
	Limit      int32
}

// ListEligibleItems 按 item_id 升序返回一批已发布且公开的条目。
func (q *Queries) ListEligibleItems(ctx context.Context, arg ListEligibleItemsParams) ([]CatalogItemRow, error) {
	rows, err := q.db.Query(ctx, listEligibleItems,
		arg.CategoryID,
		arg.ExcludeIds,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CatalogItemRow
	for rows.Next() {
		var i CatalogItemRow
		if err := rows.Scan(
			&i.ItemID,
			&i.OwnerID,
			&i.CategoryID,
			&i.Title,
			&i.ViewCount,
			&i.LikeCount,
			&i.AverageWatchDurationSeconds,
			&i.IsPublished,
			&i.Visibility,
			&i.CreatedAt,
			&i.TagIds,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countEligibleItems = `-- name: CountEligibleItems :one
select count(*)
from ranking.catalog_items c
where c.is_published
  and c.visibility = 'public'
  and ($1::uuid is null or c.category_id = $1::uuid)
  and not (c.item_id = any(coalesce($2::uuid[], '{}')))
`

// CountEligibleItemsParams 与 ListEligibleItemsParams 共享过滤条件。
type CountEligibleItemsParams struct {
	CategoryID pgtype.UUID
	ExcludeIds []uuid.UUID
}

// CountEligibleItems 返回满足过滤条件的条目数。
func (q *Queries) CountEligibleItems(ctx context.Context, arg CountEligibleItemsParams) (int64, error) {
	row := q.db.QueryRow(ctx, countEligibleItems, arg.CategoryID, arg.ExcludeIds)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getCatalogItem = `-- name: GetCatalogItem :one
select` + catalogItemColumns + `
from ranking.catalog_items c
where c.item_id = $1
`

// GetCatalogItem 返回单个条目，不做准入过滤。
func (q *Queries) GetCatalogItem(ctx context.Context, itemID uuid.UUID) (CatalogItemRow, error) {
	row := q.db.QueryRow(ctx, getCatalogItem, itemID)
	var i CatalogItemRow
	err := row.Scan(
		&i.ItemID,
		&i.OwnerID,
		&i.CategoryID,
		&i.Title,
		&i.ViewCount,
		&i.LikeCount,
		&i.AverageWatchDurationSeconds,
		&i.IsPublished,
		&i.Visibility,
		&i.CreatedAt,
		&i.TagIds,
	)
	return i, err
}

const listOwnersByIDs = `-- name: ListOwnersByIDs :many
select owner_id, display_name, avatar_url
from ranking.owners
where owner_id = any($1::uuid[])
`

// ListOwnersByIDs 批量读取作者展示信息。
func (q *Queries) ListOwnersByIDs(ctx context.Context, ids []uuid.UUID) ([]RankingOwner, error) {
	rows, err := q.db.Query(ctx, listOwnersByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RankingOwner
	for rows.Next() {
		var i RankingOwner
		if err := rows.Scan(&i.OwnerID, &i.DisplayName, &i.AvatarUrl); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCategoriesByIDs = `-- name: ListCategoriesByIDs :many
select category_id, name
from ranking.categories
where category_id = any($1::uuid[])
`

// ListCategoriesByIDs 批量读取分类名称。
func (q *Queries) ListCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]RankingCategory, error) {
	rows, err := q.db.Query(ctx, listCategoriesByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RankingCategory
	for rows.Next() {
		var i RankingCategory
		if err := rows.Scan(&i.CategoryID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
