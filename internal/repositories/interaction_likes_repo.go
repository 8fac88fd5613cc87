package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/repositories/mappers"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories/rankingdb"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InteractionLikesRepository 维护 ranking.interaction_likes 点赞台账（每个用户/条目至多一条）。
type InteractionLikesRepository struct {
	db      *pgxpool.Pool
	queries *rankingdb.Queries
	log     *log.Helper
}

// NewInteractionLikesRepository 构造仓储实例。
func NewInteractionLikesRepository(db *pgxpool.Pool, logger log.Logger) *InteractionLikesRepository {
	return &InteractionLikesRepository{
		db:      db,
		queries: rankingdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// Record 记录点赞；已存在时返回 false。
func (r *InteractionLikesRepository) Record(ctx context.Context, sess txmanager.Session, userID, itemID uuid.UUID, likedAt time.Time) (bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	affected, err := queries.InsertInteractionLike(ctx, rankingdb.InsertInteractionLikeParams{
		UserID:  userID,
		ItemID:  itemID,
		LikedAt: mappers.ToPgTimestamptz(likedAt),
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("record like failed: user=%s item=%s err=%v", userID, itemID, err)
		return false, fmt.Errorf("record like: %w", err)
	}
	return affected > 0, nil
}

// Remove 删除点赞；不存在时返回 false。
func (r *InteractionLikesRepository) Remove(ctx context.Context, sess txmanager.Session, userID, itemID uuid.UUID) (bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	affected, err := queries.DeleteInteractionLike(ctx, userID, itemID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("remove like failed: user=%s item=%s err=%v", userID, itemID, err)
		return false, fmt.Errorf("remove like: %w", err)
	}
	return affected > 0, nil
}
