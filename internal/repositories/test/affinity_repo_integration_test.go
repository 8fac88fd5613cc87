package repositories_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAffinityRepository_EnsureLoadSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := newTestPool(ctx, t)
	repo := repositories.NewAffinityRepository(pool, log.NewStdLogger(io.Discard))
	tx := newTxManager(t, pool)

	userID := uuid.New()
	_, err := repo.Load(ctx, nil, userID)
	require.ErrorIs(t, err, repositories.ErrAffinityProfileNotFound)

	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Ensure(ctx, nil, userID, now))
	require.NoError(t, repo.Ensure(ctx, nil, userID, now.Add(time.Hour)))

	before, err := repo.Load(ctx, nil, userID)
	require.NoError(t, err)
	require.Equal(t, int64(0), before.Version)
	require.True(t, before.LastUpdatedAt.Equal(now))

	cat := uuid.New()
	tag := uuid.New()
	item := uuid.New()
	after := before.Clone()
	after.CategoryWeights[cat] = 1.0
	after.TagWeights[tag] = 1.0
	after.WatchHistory = append(after.WatchHistory, po.WatchEntry{ItemID: item, WatchCount: 1, TotalDurationSeconds: 30, LastWatchedAt: now})
	after.LastUpdatedAt = now.Add(time.Minute)

	err = tx.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		version, saveErr := repo.Save(txCtx, sess, before, after)
		require.Equal(t, int64(1), version)
		return saveErr
	})
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, nil, userID)
	require.NoError(t, err)
	require.Equal(t, int64(1), loaded.Version)
	require.Equal(t, 1.0, loaded.CategoryWeights[cat])
	require.Equal(t, 1.0, loaded.TagWeights[tag])
	require.Len(t, loaded.WatchHistory, 1)
	require.Equal(t, 30.0, loaded.WatchHistory[0].TotalDurationSeconds)

	removal := loaded.Clone()
	delete(removal.CategoryWeights, cat)
	removal.WatchHistory = nil
	_, err = repo.Save(ctx, nil, loaded, removal)
	require.NoError(t, err)

	final, err := repo.Load(ctx, nil, userID)
	require.NoError(t, err)
	require.Empty(t, final.CategoryWeights)
	require.Empty(t, final.WatchHistory)
	require.Equal(t, 1.0, final.TagWeights[tag])
	require.Equal(t, int64(2), final.Version)
}

func TestAffinityRepository_VersionConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := newTestPool(ctx, t)
	repo := repositories.NewAffinityRepository(pool, log.NewStdLogger(io.Discard))

	userID := uuid.New()
	require.NoError(t, repo.Ensure(ctx, nil, userID, time.Now()))
	snapshot, err := repo.Load(ctx, nil, userID)
	require.NoError(t, err)

	first := snapshot.Clone()
	first.CategoryWeights[uuid.New()] = 1
	_, err = repo.Save(ctx, nil, snapshot, first)
	require.NoError(t, err)

	stale := snapshot.Clone()
	stale.TagWeights[uuid.New()] = 1
	_, err = repo.Save(ctx, nil, snapshot, stale)
	require.ErrorIs(t, err, repositories.ErrAffinityVersionConflict)
}

func TestInteractionLikesRepository_Ledger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := newTestPool(ctx, t)
	repo := repositories.NewInteractionLikesRepository(pool, log.NewStdLogger(io.Discard))

	userID := uuid.New()
	itemID := uuid.New()

	inserted, err := repo.Record(ctx, nil, userID, itemID, time.Now())
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.Record(ctx, nil, userID, itemID, time.Now())
	require.NoError(t, err)
	require.False(t, inserted)

	removed, err := repo.Remove(ctx, nil, userID, itemID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.Remove(ctx, nil, userID, itemID)
	require.NoError(t, err)
	require.False(t, removed)
}
