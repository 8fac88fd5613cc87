package services_test

import (
	"context"
	"io"
	"testing"
	"time"

	outboxevents "github.com/bionicotaku/lingo-services-ranking/internal/models/outbox_events"
	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	"github.com/bionicotaku/lingo-services-ranking/internal/services/mocks"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type updaterFixture struct {
	catalog  *memCatalog
	affinity *memAffinity
	likes    *memLikes
	outbox   *memOutbox
	updater  *services.PreferenceUpdater
}

func newUpdaterFixture(opts services.Options, items ...*po.CatalogItem) *updaterFixture {
	logger := log.NewStdLogger(io.Discard)
	f := &updaterFixture{
		catalog:  newMemCatalog(items...),
		affinity: newMemAffinity(),
		likes:    newMemLikes(),
		outbox:   &memOutbox{},
	}
	view := services.NewCatalogView(f.catalog, opts, logger)
	store := services.NewAffinityStore(f.affinity, fakeTxManager{}, opts, logger)
	f.updater = services.NewPreferenceUpdater(view, store, f.likes, f.outbox, opts, logger)
	return f
}

func (f *updaterFixture) apply(t *testing.T, userID uuid.UUID, item *po.CatalogItem, typ po.InteractionType, duration float64) *services.ApplyResult {
	t.Helper()
	result, err := f.updater.Apply(context.Background(), services.ApplyInput{
		UserID:          userID,
		ItemID:          item.ID,
		Type:            typ,
		DurationSeconds: duration,
	})
	require.NoError(t, err)
	return result
}

func TestPreferenceUpdater_WatchAccumulates(t *testing.T) {
	t.Parallel()

	item := newItem(uuid.New(), 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{}, item)
	userID := uuid.New()

	f.apply(t, userID, item, po.InteractionWatch, 30)
	result := f.apply(t, userID, item, po.InteractionWatch, 12.5)

	require.Len(t, result.Profile.WatchHistory, 1)
	entry := result.Profile.WatchHistory[0]
	require.Equal(t, int64(2), entry.WatchCount)
	require.InDelta(t, 42.5, entry.TotalDurationSeconds, 1e-9)
	require.False(t, result.WeightsChanged)
	require.Empty(t, result.Profile.CategoryWeights)
	require.Equal(t, int64(2), result.Profile.Version)
}

func TestPreferenceUpdater_LikeInsertsThenIncrements(t *testing.T) {
	t.Parallel()

	cat, tagA, tagB := uuid.New(), uuid.New(), uuid.New()
	first := newItem(cat, 0, 0, scorerNow, tagA)
	second := newItem(cat, 0, 0, scorerNow, tagA, tagB)
	f := newUpdaterFixture(services.Options{}, first, second)
	userID := uuid.New()

	result := f.apply(t, userID, first, po.InteractionLike, 0)
	require.True(t, result.WeightsChanged)
	require.Equal(t, 1.0, result.Profile.CategoryWeights[cat])
	require.Equal(t, 1.0, result.Profile.TagWeights[tagA])

	result = f.apply(t, userID, second, po.InteractionLike, 0)
	require.Equal(t, 1.5, result.Profile.CategoryWeights[cat])
	require.Equal(t, 1.3, result.Profile.TagWeights[tagA])
	require.Equal(t, 1.0, result.Profile.TagWeights[tagB])
}

func TestPreferenceUpdater_DuplicateLikeIsIgnored(t *testing.T) {
	t.Parallel()

	cat := uuid.New()
	item := newItem(cat, 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{}, item)
	userID := uuid.New()

	f.apply(t, userID, item, po.InteractionLike, 0)
	result := f.apply(t, userID, item, po.InteractionLike, 0)

	require.False(t, result.WeightsChanged)
	require.Equal(t, 1.0, result.Profile.CategoryWeights[cat])
	require.Len(t, f.outbox.messages, 2)
}

func TestPreferenceUpdater_UnlikeDecrementRestoresWeights(t *testing.T) {
	t.Parallel()

	cat, tag, otherTag := uuid.New(), uuid.New(), uuid.New()
	seed := newItem(cat, 0, 0, scorerNow, tag)
	liked := newItem(cat, 0, 0, scorerNow, tag, otherTag)
	f := newUpdaterFixture(services.Options{UnlikePolicy: services.UnlikePolicyDecrement}, seed, liked)
	userID := uuid.New()

	before := f.apply(t, userID, seed, po.InteractionLike, 0).Profile
	f.apply(t, userID, liked, po.InteractionLike, 0)
	after := f.apply(t, userID, liked, po.InteractionUnlike, 0).Profile

	require.Equal(t, before.CategoryWeights, after.CategoryWeights)
	require.Equal(t, before.TagWeights, after.TagWeights)
	require.NotContains(t, after.TagWeights, otherTag)
}

func TestPreferenceUpdater_UnlikeRemovePolicyDropsEntries(t *testing.T) {
	t.Parallel()

	cat, tag := uuid.New(), uuid.New()
	seed := newItem(cat, 0, 0, scorerNow, tag)
	liked := newItem(cat, 0, 0, scorerNow, tag)
	f := newUpdaterFixture(services.Options{UnlikePolicy: services.UnlikePolicyRemove}, seed, liked)
	userID := uuid.New()

	f.apply(t, userID, seed, po.InteractionLike, 0)
	f.apply(t, userID, liked, po.InteractionLike, 0)
	after := f.apply(t, userID, liked, po.InteractionUnlike, 0).Profile

	require.Empty(t, after.CategoryWeights)
	require.Empty(t, after.TagWeights)
}

func TestPreferenceUpdater_UnlikeWithoutLikeIsNoop(t *testing.T) {
	t.Parallel()

	cat := uuid.New()
	seed := newItem(cat, 0, 0, scorerNow)
	other := newItem(cat, 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{}, seed, other)
	userID := uuid.New()

	f.apply(t, userID, seed, po.InteractionLike, 0)
	result := f.apply(t, userID, other, po.InteractionUnlike, 0)

	require.False(t, result.WeightsChanged)
	require.Equal(t, 1.0, result.Profile.CategoryWeights[cat])
}

func TestPreferenceUpdater_CreateAndShareOnlyTouchTimestamp(t *testing.T) {
	t.Parallel()

	item := newItem(uuid.New(), 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{}, item)
	userID := uuid.New()

	for _, typ := range []po.InteractionType{po.InteractionCreate, po.InteractionShare} {
		result := f.apply(t, userID, item, typ, 0)
		require.False(t, result.WeightsChanged)
		require.Empty(t, result.Profile.CategoryWeights)
		require.Empty(t, result.Profile.TagWeights)
		require.Empty(t, result.Profile.WatchHistory)
		require.False(t, result.Profile.LastUpdatedAt.IsZero())
	}
	require.NotNil(t, f.affinity.snapshot(userID))
}

func TestPreferenceUpdater_RejectsInvalidInputBeforeStoreAccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := log.NewStdLogger(io.Discard)
	catalog := mocks.NewMockCatalogRepository(ctrl)
	affinity := mocks.NewMockAffinityRepository(ctrl)
	likes := mocks.NewMockLikeLedger(ctrl)
	outbox := mocks.NewMockOutboxEnqueuer(ctrl)
	updater := services.NewPreferenceUpdater(
		services.NewCatalogView(catalog, services.Options{}, logger),
		services.NewAffinityStore(affinity, fakeTxManager{}, services.Options{}, logger),
		likes, outbox, services.Options{}, logger,
	)

	cases := []services.ApplyInput{
		{ItemID: uuid.New(), Type: po.InteractionWatch},
		{UserID: uuid.New(), Type: po.InteractionWatch},
		{UserID: uuid.New(), ItemID: uuid.New(), Type: po.InteractionType(42)},
		{UserID: uuid.New(), ItemID: uuid.New(), Type: po.InteractionWatch, DurationSeconds: -1},
	}
	for _, input := range cases {
		_, err := updater.Apply(context.Background(), input)
		require.ErrorIs(t, err, services.ErrInvalidArgument)
	}
}

func TestPreferenceUpdater_MissingItemAbortsWithoutMutation(t *testing.T) {
	t.Parallel()

	f := newUpdaterFixture(services.Options{})
	userID := uuid.New()

	_, err := f.updater.Apply(context.Background(), services.ApplyInput{
		UserID: userID,
		ItemID: uuid.New(),
		Type:   po.InteractionLike,
	})
	require.ErrorIs(t, err, services.ErrItemNotFound)
	require.Nil(t, f.affinity.snapshot(userID))
	require.Empty(t, f.likes.likes)
	require.Empty(t, f.outbox.messages)
}

func TestPreferenceUpdater_RetriesVersionConflicts(t *testing.T) {
	t.Parallel()

	item := newItem(uuid.New(), 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{MaxRetries: 3}, item)
	f.affinity.conflicts = 2
	userID := uuid.New()

	result := f.apply(t, userID, item, po.InteractionWatch, 5)
	require.Equal(t, int64(1), result.Profile.Version)
	require.Equal(t, 3, f.affinity.saves)
}

func TestPreferenceUpdater_ConflictRetriesExhausted(t *testing.T) {
	t.Parallel()

	item := newItem(uuid.New(), 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{MaxRetries: 2}, item)
	f.affinity.conflicts = 10

	_, err := f.updater.Apply(context.Background(), services.ApplyInput{
		UserID: uuid.New(),
		ItemID: item.ID,
		Type:   po.InteractionWatch,
	})
	require.ErrorIs(t, err, services.ErrUpdateConflict)
	require.Equal(t, 3, f.affinity.saves)
}

func TestPreferenceUpdater_CapsEvictLowestWeights(t *testing.T) {
	t.Parallel()

	catA, catB, catC := uuid.New(), uuid.New(), uuid.New()
	a := newItem(catA, 0, 0, scorerNow)
	a2 := newItem(catA, 0, 0, scorerNow)
	b := newItem(catB, 0, 0, scorerNow)
	c := newItem(catC, 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{MaxCategoryEntries: 2}, a, a2, b, c)
	userID := uuid.New()

	f.apply(t, userID, a, po.InteractionLike, 0)
	f.apply(t, userID, a2, po.InteractionLike, 0)
	f.apply(t, userID, b, po.InteractionLike, 0)
	result := f.apply(t, userID, c, po.InteractionLike, 0)

	weights := result.Profile.CategoryWeights
	require.Len(t, weights, 2)
	require.Equal(t, 1.5, weights[catA])
	// catB 与 catC 同为 1.0，ID 较小者被淘汰。
	survivor := catB
	if string(catC[:]) > string(catB[:]) {
		survivor = catC
	}
	require.Contains(t, weights, survivor)
}

func TestPreferenceUpdater_WatchHistoryBounded(t *testing.T) {
	t.Parallel()

	items := []*po.CatalogItem{
		newItem(uuid.New(), 0, 0, scorerNow),
		newItem(uuid.New(), 0, 0, scorerNow),
		newItem(uuid.New(), 0, 0, scorerNow),
	}
	f := newUpdaterFixture(services.Options{MaxWatchHistory: 2}, items...)
	userID := uuid.New()

	var result *services.ApplyResult
	for i, item := range items {
		var err error
		result, err = f.updater.Apply(context.Background(), services.ApplyInput{
			UserID:     userID,
			ItemID:     item.ID,
			Type:       po.InteractionWatch,
			OccurredAt: scorerNow.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	require.Len(t, result.Profile.WatchHistory, 2)
	require.Equal(t, -1, result.Profile.FindWatch(items[0].ID))
}

func TestPreferenceUpdater_EnqueuesAuditEvent(t *testing.T) {
	t.Parallel()

	item := newItem(uuid.New(), 0, 0, scorerNow)
	f := newUpdaterFixture(services.Options{}, item)
	userID := uuid.New()

	_, err := f.updater.Apply(context.Background(), services.ApplyInput{
		UserID:          userID,
		ItemID:          item.ID,
		Type:            po.InteractionLike,
		EventID:         "evt-1",
		DurationSeconds: 0,
	})
	require.NoError(t, err)
	require.Len(t, f.outbox.messages, 1)

	msg := f.outbox.messages[0]
	require.Equal(t, "ranking.interaction.recorded", msg.EventType)
	require.Equal(t, userID, msg.AggregateID)

	payload, err := outboxevents.DecodeInteractionRecorded(msg.Payload)
	require.NoError(t, err)
	require.Equal(t, "LIKE", payload.InteractionType)
	require.Equal(t, "evt-1", payload.SourceEventID)
	require.True(t, payload.WeightsChanged)
	require.Equal(t, int64(1), payload.ProfileVersion)
}
