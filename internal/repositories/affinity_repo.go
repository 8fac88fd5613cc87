package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories/mappers"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories/rankingdb"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrAffinityProfileNotFound 表示用户尚无偏好档案。
	ErrAffinityProfileNotFound = errors.New("affinity profile not found")
	// ErrAffinityVersionConflict 表示乐观并发校验失败，档案已被其他写入更新。
	ErrAffinityVersionConflict = errors.New("affinity profile version conflict")
)

// AffinityRepository 访问 ranking.affinity_* 表。
type AffinityRepository struct {
	db      *pgxpool.Pool
	queries *rankingdb.Queries
	log     *log.Helper
}

// NewAffinityRepository 构造仓储实例。
func NewAffinityRepository(db *pgxpool.Pool, logger log.Logger) *AffinityRepository {
	return &AffinityRepository{
		db:      db,
		queries: rankingdb.New(db),
		log:     log.NewHelper(logger),
	}
}

func (r *AffinityRepository) q(sess txmanager.Session) *rankingdb.Queries {
	if sess != nil {
		return r.queries.WithTx(sess.Tx())
	}
	return r.queries
}

// Ensure 原子地创建档案头，已存在时保持不变。
func (r *AffinityRepository) Ensure(ctx context.Context, sess txmanager.Session, userID uuid.UUID, now time.Time) error {
	if err := r.q(sess).EnsureAffinityProfile(ctx, rankingdb.EnsureAffinityProfileParams{
		UserID: userID,
		Now:    mappers.ToPgTimestamptz(now),
	}); err != nil {
		r.log.WithContext(ctx).Errorf("ensure affinity profile failed: user=%s err=%v", userID, err)
		return fmt.Errorf("ensure affinity profile: %w", err)
	}
	return nil
}

// Load 读取完整档案。
func (r *AffinityRepository) Load(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.AffinityProfile, error) {
	queries := r.q(sess)
	head, err := queries.GetAffinityProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAffinityProfileNotFound
		}
		return nil, fmt.Errorf("get affinity profile: %w", err)
	}
	categories, err := queries.ListAffinityCategoryWeights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list category weights: %w", err)
	}
	tags, err := queries.ListAffinityTagWeights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tag weights: %w", err)
	}
	history, err := queries.ListAffinityWatchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watch history: %w", err)
	}
	return mappers.AffinityProfileFromRows(head, categories, tags, history), nil
}

// Save 持久化 before → after 的差异，并在版本匹配时递增版本号。
// 版本不匹配返回 ErrAffinityVersionConflict，调用方应回滚事务后重试。
func (r *AffinityRepository) Save(ctx context.Context, sess txmanager.Session, before, after *po.AffinityProfile) (int64, error) {
	if before == nil || after == nil {
		return 0, fmt.Errorf("save affinity profile: nil snapshot")
	}
	queries := r.q(sess)
	userID := before.UserID

	version, err := queries.BumpAffinityProfileVersion(ctx, rankingdb.BumpAffinityProfileVersionParams{
		UserID:          userID,
		ExpectedVersion: before.Version,
		LastUpdatedAt:   mappers.ToPgTimestamptz(after.LastUpdatedAt),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.WithContext(ctx).Debugf("affinity version conflict: user=%s expected=%d", userID, before.Version)
			return 0, ErrAffinityVersionConflict
		}
		return 0, fmt.Errorf("bump affinity version: %w", err)
	}

	if err := saveWeights(ctx, userID, before.CategoryWeights, after.CategoryWeights,
		queries.UpsertAffinityCategoryWeight, queries.DeleteAffinityCategoryWeight); err != nil {
		return 0, fmt.Errorf("save category weights: %w", err)
	}
	if err := saveWeights(ctx, userID, before.TagWeights, after.TagWeights,
		queries.UpsertAffinityTagWeight, queries.DeleteAffinityTagWeight); err != nil {
		return 0, fmt.Errorf("save tag weights: %w", err)
	}
	if err := saveWatchHistory(ctx, queries, userID, before.WatchHistory, after.WatchHistory); err != nil {
		return 0, fmt.Errorf("save watch history: %w", err)
	}
	return version, nil
}

func saveWeights(
	ctx context.Context,
	userID uuid.UUID,
	before, after map[uuid.UUID]float64,
	upsert func(context.Context, rankingdb.UpsertAffinityWeightParams) error,
	remove func(context.Context, uuid.UUID, uuid.UUID) error,
) error {
	for id, weight := range after {
		if prev, ok := before[id]; ok && prev == weight {
			continue
		}
		if err := upsert(ctx, rankingdb.UpsertAffinityWeightParams{UserID: userID, ID: id, Weight: weight}); err != nil {
			return err
		}
	}
	for id := range before {
		if _, ok := after[id]; ok {
			continue
		}
		if err := remove(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

func saveWatchHistory(ctx context.Context, queries *rankingdb.Queries, userID uuid.UUID, before, after []po.WatchEntry) error {
	prev := make(map[uuid.UUID]po.WatchEntry, len(before))
	for _, entry := range before {
		prev[entry.ItemID] = entry
	}
	kept := make(map[uuid.UUID]struct{}, len(after))
	for _, entry := range after {
		kept[entry.ItemID] = struct{}{}
		if old, ok := prev[entry.ItemID]; ok && watchEntryEqual(old, entry) {
			continue
		}
		if err := queries.UpsertAffinityWatchEntry(ctx, rankingdb.UpsertAffinityWatchEntryParams{
			UserID:               userID,
			ItemID:               entry.ItemID,
			WatchCount:           entry.WatchCount,
			TotalDurationSeconds: entry.TotalDurationSeconds,
			LastWatchedAt:        mappers.ToPgTimestamptz(entry.LastWatchedAt),
		}); err != nil {
			return err
		}
	}
	for id := range prev {
		if _, ok := kept[id]; ok {
			continue
		}
		if err := queries.DeleteAffinityWatchEntry(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

func watchEntryEqual(a, b po.WatchEntry) bool {
	return a.WatchCount == b.WatchCount &&
		a.TotalDurationSeconds == b.TotalDurationSeconds &&
		a.LastWatchedAt.Equal(b.LastWatchedAt)
}
