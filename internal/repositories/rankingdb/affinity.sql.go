package rankingdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const ensureAffinityProfile = `-- name: EnsureAffinityProfile :exec
insert into ranking.affinity_profiles (user_id, version, created_at, last_updated_at)
values ($1, 0, $2, $2)
on conflict (user_id) do nothing
`

// EnsureAffinityProfileParams 描述档案的惰性创建参数。
type EnsureAffinityProfileParams struct {
	UserID uuid.UUID
	Now    pgtype.Timestamptz
}

// EnsureAffinityProfile 原子地创建档案（已存在时不做任何事）。
func (q *Queries) EnsureAffinityProfile(ctx context.Context, arg EnsureAffinityProfileParams) error {
	_, err := q.db.Exec(ctx, ensureAffinityProfile, arg.UserID, arg.Now)
	return err
}

const getAffinityProfile = `-- name: GetAffinityProfile :one
select user_id, version, created_at, last_updated_at
from ranking.affinity_profiles
where user_id = $1
`

// GetAffinityProfile 读取档案头。
func (q *Queries) GetAffinityProfile(ctx context.Context, userID uuid.UUID) (RankingAffinityProfile, error) {
	row := q.db.QueryRow(ctx, getAffinityProfile, userID)
	var i RankingAffinityProfile
	err := row.Scan(&i.UserID, &i.Version, &i.CreatedAt, &i.LastUpdatedAt)
	return i, err
}

const bumpAffinityProfileVersion = `-- name: BumpAffinityProfileVersion :one
update ranking.affinity_profiles
set version = version + 1,
    last_updated_at = $3
where user_id = $1
  and version = $2
returning version
`

// BumpAffinityProfileVersionParams 描述乐观并发校验参数。
type BumpAffinityProfileVersionParams struct {
	UserID          uuid.UUID
	ExpectedVersion int64
	LastUpdatedAt   pgtype.Timestamptz
}

// BumpAffinityProfileVersion 仅在版本匹配时递增版本；不匹配时返回 pgx.ErrNoRows。
func (q *Queries) BumpAffinityProfileVersion(ctx context.Context, arg BumpAffinityProfileVersionParams) (int64, error) {
	row := q.db.QueryRow(ctx, bumpAffinityProfileVersion, arg.UserID, arg.ExpectedVersion, arg.LastUpdatedAt)
	var version int64
	err := row.Scan(&version)
	return version, err
}

const listAffinityCategoryWeights = `-- name: ListAffinityCategoryWeights :many
select category_id, weight
from ranking.affinity_category_weights
where user_id = $1
`

// ListAffinityCategoryWeights 返回用户的分类权重。
func (q *Queries) ListAffinityCategoryWeights(ctx context.Context, userID uuid.UUID) ([]RankingAffinityWeight, error) {
	return q.listWeights(ctx, listAffinityCategoryWeights, userID)
}

const listAffinityTagWeights = `-- name: ListAffinityTagWeights :many
select tag_id, weight
from ranking.affinity_tag_weights
where user_id = $1
`

// ListAffinityTagWeights 返回用户的标签权重。
func (q *Queries) ListAffinityTagWeights(ctx context.Context, userID uuid.UUID) ([]RankingAffinityWeight, error) {
	return q.listWeights(ctx, listAffinityTagWeights, userID)
}

func (q *Queries) listWeights(ctx context.Context, query string, userID uuid.UUID) ([]RankingAffinityWeight, error) {
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RankingAffinityWeight
	for rows.Next() {
		var i RankingAffinityWeight
		if err := rows.Scan(&i.ID, &i.Weight); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAffinityWatchHistory = `-- name: ListAffinityWatchHistory :many
select item_id, watch_count, total_duration_seconds, last_watched_at
from ranking.affinity_watch_history
where user_id = $1
order by last_watched_at desc, item_id
`

// ListAffinityWatchHistory 返回观看历史，最近观看在前。
func (q *Queries) ListAffinityWatchHistory(ctx context.Context, userID uuid.UUID) ([]RankingAffinityWatchHistory, error) {
	rows, err := q.db.Query(ctx, listAffinityWatchHistory, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RankingAffinityWatchHistory
	for rows.Next() {
		var i RankingAffinityWatchHistory
		if err := rows.Scan(&i.ItemID, &i.WatchCount, &i.TotalDurationSeconds, &i.LastWatchedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertAffinityCategoryWeight = `-- name: UpsertAffinityCategoryWeight :exec
insert into ranking.affinity_category_weights (user_id, category_id, weight)
values ($1, $2, $3)
on conflict (user_id, category_id) do update
set weight = excluded.weight
`

// UpsertAffinityWeightParams 描述权重写入参数。
type UpsertAffinityWeightParams struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Weight float64
}

// UpsertAffinityCategoryWeight 写入分类权重。
func (q *Queries) UpsertAffinityCategoryWeight(ctx context.Context, arg UpsertAffinityWeightParams) error {
	_, err := q.db.Exec(ctx, upsertAffinityCategoryWeight, arg.UserID, arg.ID, arg.Weight)
	return err
}

const deleteAffinityCategoryWeight = `-- name: DeleteAffinityCategoryWeight :exec
delete from ranking.affinity_category_weights
where user_id = $1 and category_id = $2
`

// DeleteAffinityCategoryWeight 删除分类权重。
func (q *Queries) DeleteAffinityCategoryWeight(ctx context.Context, userID, categoryID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteAffinityCategoryWeight, userID, categoryID)
	return err
}

const upsertAffinityTagWeight = `-- name: UpsertAffinityTagWeight :exec
insert into ranking.affinity_tag_weights (user_id, tag_id, weight)
values ($1, $2, $3)
on conflict (user_id, tag_id) do update
set weight = excluded.weight
`

// UpsertAffinityTagWeight 写入标签权重。
func (q *Queries) UpsertAffinityTagWeight(ctx context.Context, arg UpsertAffinityWeightParams) error {
	_, err := q.db.Exec(ctx, upsertAffinityTagWeight, arg.UserID, arg.ID, arg.Weight)
	return err
}

const deleteAffinityTagWeight = `-- name: DeleteAffinityTagWeight :exec
delete from ranking.affinity_tag_weights
where user_id = $1 and tag_id = $2
`

// DeleteAffinityTagWeight 删除标签权重。
func (q *Queries) DeleteAffinityTagWeight(ctx context.Context, userID, tagID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteAffinityTagWeight, userID, tagID)
	return err
}

const upsertAffinityWatchEntry = `-- name: UpsertAffinityWatchEntry :exec
insert into ranking.affinity_watch_history (user_id, item_id, watch_count, total_duration_seconds, last_watched_at)
values ($1, $2, $3, $4, $5)
on conflict (user_id, item_id) do update
set watch_count = excluded.watch_count,
    total_duration_seconds = excluded.total_duration_seconds,
    last_watched_at = excluded.last_watched_at
`

// UpsertAffinityWatchEntryParams 描述观看历史写入参数。
type UpsertAffinityWatchEntryParams struct {
	UserID               uuid.UUID
	ItemID               uuid.UUID
	WatchCount           int64
	TotalDurationSeconds float64
	LastWatchedAt        pgtype.Timestamptz
}

// UpsertAffinityWatchEntry 写入观看历史条目。
func (q *Queries) UpsertAffinityWatchEntry(ctx context.Context, arg UpsertAffinityWatchEntryParams) error {
	_, err := q.db.Exec(ctx, upsertAffinityWatchEntry,
		arg.UserID,
		arg.ItemID,
		arg.WatchCount,
		arg.TotalDurationSeconds,
		arg.LastWatchedAt,
	)
	return err
}

const deleteAffinityWatchEntry = `-- name: DeleteAffinityWatchEntry :exec
delete from ranking.affinity_watch_history
where user_id = $1 and item_id = $2
`

// DeleteAffinityWatchEntry 删除观看历史条目。
func (q *Queries) DeleteAffinityWatchEntry(ctx context.Context, userID, itemID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteAffinityWatchEntry, userID, itemID)
	return err
}

const insertInteractionLike = `-- name: InsertInteractionLike :execrows
insert into ranking.interaction_likes (user_id, item_id, liked_at)
values ($1, $2, $3)
on conflict (user_id, item_id) do nothing
`

// InsertInteractionLikeParams 描述点赞台账写入参数。
type InsertInteractionLikeParams struct {
	UserID  uuid.UUID
	ItemID  uuid.UUID
	LikedAt pgtype.Timestamptz
}

// InsertInteractionLike 记录点赞，返回受影响行数（重复点赞为 0）。
func (q *Queries) InsertInteractionLike(ctx context.Context, arg InsertInteractionLikeParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertInteractionLike, arg.UserID, arg.ItemID, arg.LikedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteInteractionLike = `-- name: DeleteInteractionLike :execrows
delete from ranking.interaction_likes
where user_id = $1 and item_id = $2
`

// DeleteInteractionLike 移除点赞记录，返回受影响行数。
func (q *Queries) DeleteInteractionLike(ctx context.Context, userID, itemID uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteInteractionLike, userID, itemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
