package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	outboxevents "github.com/bionicotaku/lingo-services-ranking/internal/models/outbox_events"
	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// 权重调整常量。
const (
	likeInsertWeight  = 1.0
	likeCategoryStep  = 0.5
	likeTagStep       = 0.3
	weightEpsilon     = 1e-9
	weightSnapQuantum = 1e9
)

// ApplyInput 描述一次互动。
type ApplyInput struct {
	UserID          uuid.UUID
	ItemID          uuid.UUID
	Type            po.InteractionType
	DurationSeconds float64
	OccurredAt      time.Time
	EventID         string
}

// ApplyResult 返回互动作用后的档案快照。
type ApplyResult struct {
	Profile        *po.AffinityProfile
	WeightsChanged bool
}

// PreferenceUpdater 将互动折算进用户偏好档案，并写入审计事件。
type PreferenceUpdater struct {
	catalog *CatalogView
	store   *AffinityStore
	likes   LikeLedger
	outbox  OutboxEnqueuer
	opts    Options
	now     func() time.Time
	log     *log.Helper
	metrics *rankingMetrics
	outboxM *outboxMetrics
}

// NewPreferenceUpdater 构造 PreferenceUpdater。
func NewPreferenceUpdater(
	catalog *CatalogView,
	store *AffinityStore,
	likes LikeLedger,
	outbox OutboxEnqueuer,
	opts Options,
	logger log.Logger,
) *PreferenceUpdater {
	return &PreferenceUpdater{
		catalog: catalog,
		store:   store,
		likes:   likes,
		outbox:  outbox,
		opts:    opts.withDefaults(),
		now:     time.Now,
		log:     log.NewHelper(logger),
		metrics: sharedRankingMetrics(),
		outboxM: newOutboxMetrics("preference_updater"),
	}
}

// Apply 校验入参、确认条目存在，并在可重试事务中更新档案。
func (u *PreferenceUpdater) Apply(ctx context.Context, input ApplyInput) (result *ApplyResult, err error) {
	defer func() { u.record(ctx, input.Type, err) }()

	input, err = u.normalize(input)
	if err != nil {
		return nil, err
	}
	item, err := u.catalog.Item(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	err = u.store.WithinRetryingTx(ctx, func(txCtx context.Context, sess txmanager.Session) error {
		applied, applyErr := u.applyInSession(txCtx, sess, input, item)
		if applyErr != nil {
			return applyErr
		}
		result = applied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInSession 在调用方事务内应用互动，冲突直接返回由调用方决定重投。
func (u *PreferenceUpdater) ApplyInSession(ctx context.Context, sess txmanager.Session, input ApplyInput) (result *ApplyResult, err error) {
	defer func() { u.record(ctx, input.Type, err) }()

	input, err = u.normalize(input)
	if err != nil {
		return nil, err
	}
	item, err := u.catalog.Item(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	return u.applyInSession(ctx, sess, input, item)
}

func (u *PreferenceUpdater) record(ctx context.Context, typ po.InteractionType, err error) {
	u.metrics.recordApply(ctx, typ.String(), err)
	if errors.Is(err, ErrUpdateConflict) {
		u.metrics.recordConflict(ctx)
	}
}

func (u *PreferenceUpdater) normalize(input ApplyInput) (ApplyInput, error) {
	if input.UserID == uuid.Nil {
		return input, invalidArgument("user_id is required")
	}
	if input.ItemID == uuid.Nil {
		return input, invalidArgument("item_id is required")
	}
	if !input.Type.Valid() {
		return input, invalidArgument("unknown interaction type %d", int(input.Type))
	}
	if math.IsNaN(input.DurationSeconds) || math.IsInf(input.DurationSeconds, 0) || input.DurationSeconds < 0 {
		return input, invalidArgument("duration_seconds must be a non-negative number")
	}
	if input.OccurredAt.IsZero() {
		input.OccurredAt = u.now()
	}
	input.OccurredAt = input.OccurredAt.UTC()
	return input, nil
}

func (u *PreferenceUpdater) applyInSession(ctx context.Context, sess txmanager.Session, input ApplyInput, item *po.CatalogItem) (*ApplyResult, error) {
	likeEffective, err := u.updateLikeLedger(ctx, sess, input)
	if err != nil {
		return nil, err
	}

	applier := &interactionApplier{
		item:          item,
		input:         input,
		opts:          u.opts,
		likeEffective: likeEffective,
	}
	profile, err := u.store.UpsertInSession(ctx, sess, input.UserID, func(p *po.AffinityProfile) error {
		applier.profile = p
		return input.Type.Accept(applier)
	})
	if err != nil {
		return nil, err
	}

	if err := u.enqueueRecorded(ctx, sess, input, profile.Version, applier.weightsChanged); err != nil {
		return nil, err
	}
	return &ApplyResult{Profile: profile, WeightsChanged: applier.weightsChanged}, nil
}

// updateLikeLedger 维护点赞台账，返回本次 LIKE/UNLIKE 是否应改变权重。
func (u *PreferenceUpdater) updateLikeLedger(ctx context.Context, sess txmanager.Session, input ApplyInput) (bool, error) {
	switch input.Type {
	case po.InteractionLike:
		inserted, err := u.likes.Record(ctx, sess, input.UserID, input.ItemID, input.OccurredAt)
		if err != nil {
			return false, dependencyError("record like", err)
		}
		if !inserted {
			u.log.WithContext(ctx).Debugf("duplicate like ignored: user=%s item=%s", input.UserID, input.ItemID)
		}
		return inserted, nil
	case po.InteractionUnlike:
		removed, err := u.likes.Remove(ctx, sess, input.UserID, input.ItemID)
		if err != nil {
			return false, dependencyError("remove like", err)
		}
		if !removed {
			u.log.WithContext(ctx).Debugf("unlike without prior like ignored: user=%s item=%s", input.UserID, input.ItemID)
		}
		return removed, nil
	default:
		return false, nil
	}
}

func (u *PreferenceUpdater) enqueueRecorded(ctx context.Context, sess txmanager.Session, input ApplyInput, version int64, weightsChanged bool) error {
	if u.outbox == nil {
		return nil
	}
	evt, err := outboxevents.NewInteractionRecordedEvent(uuid.New(), outboxevents.InteractionRecorded{
		UserID:          input.UserID,
		ItemID:          input.ItemID,
		InteractionType: input.Type.String(),
		DurationSeconds: input.DurationSeconds,
		OccurredAt:      input.OccurredAt,
		ProfileVersion:  version,
		WeightsChanged:  weightsChanged,
		SourceEventID:   input.EventID,
	})
	if err != nil {
		return fmt.Errorf("build interaction event: %w", err)
	}
	eventType := outboxevents.FormatEventType(evt.Kind)
	msg, err := repositories.BuildMessage(evt, outboxevents.TraceIDFromContext(ctx))
	if err != nil {
		u.outboxM.recordFailure(ctx, eventType, err)
		return fmt.Errorf("encode interaction event: %w", err)
	}
	if err := u.outbox.Enqueue(ctx, sess, msg); err != nil {
		u.outboxM.recordFailure(ctx, eventType, err)
		return dependencyError("enqueue interaction event", err)
	}
	u.outboxM.recordSuccess(ctx, eventType, evt.OccurredAt)
	return nil
}

// interactionApplier 按互动类型修改档案副本。
type interactionApplier struct {
	profile        *po.AffinityProfile
	item           *po.CatalogItem
	input          ApplyInput
	opts           Options
	likeEffective  bool
	weightsChanged bool
}

var _ po.InteractionVisitor = (*interactionApplier)(nil)

func (a *interactionApplier) OnWatch() error {
	history := a.profile.WatchHistory
	if idx := a.profile.FindWatch(a.item.ID); idx >= 0 {
		entry := history[idx]
		entry.WatchCount++
		entry.TotalDurationSeconds += a.input.DurationSeconds
		entry.LastWatchedAt = a.input.OccurredAt
		history[idx] = entry
	} else {
		history = append(history, po.WatchEntry{
			ItemID:               a.item.ID,
			WatchCount:           1,
			TotalDurationSeconds: a.input.DurationSeconds,
			LastWatchedAt:        a.input.OccurredAt,
		})
	}
	a.profile.WatchHistory = trimWatchHistory(history, a.opts.MaxWatchHistory)
	return nil
}

func (a *interactionApplier) OnLike() error {
	if !a.likeEffective {
		return nil
	}
	bumpWeight(a.profile.CategoryWeights, a.item.CategoryID, likeCategoryStep)
	for _, tag := range distinctIDs(a.item.TagIDs) {
		bumpWeight(a.profile.TagWeights, tag, likeTagStep)
	}
	evictLowest(a.profile.CategoryWeights, a.opts.MaxCategoryEntries)
	evictLowest(a.profile.TagWeights, a.opts.MaxTagEntries)
	a.weightsChanged = true
	return nil
}

func (a *interactionApplier) OnUnlike() error {
	if !a.likeEffective {
		return nil
	}
	tags := distinctIDs(a.item.TagIDs)
	switch a.opts.UnlikePolicy {
	case UnlikePolicyRemove:
		delete(a.profile.CategoryWeights, a.item.CategoryID)
		for _, tag := range tags {
			delete(a.profile.TagWeights, tag)
		}
	default:
		decrementWeight(a.profile.CategoryWeights, a.item.CategoryID, likeCategoryStep)
		for _, tag := range tags {
			decrementWeight(a.profile.TagWeights, tag, likeTagStep)
		}
	}
	a.weightsChanged = true
	return nil
}

// OnCreate 仅刷新 lastUpdatedAt。
func (a *interactionApplier) OnCreate() error { return nil }

// OnShare 仅刷新 lastUpdatedAt。
func (a *interactionApplier) OnShare() error { return nil }

func snapWeight(w float64) float64 {
	return math.Round(w*weightSnapQuantum) / weightSnapQuantum
}

func bumpWeight(weights map[uuid.UUID]float64, id uuid.UUID, step float64) {
	if current, ok := weights[id]; ok {
		weights[id] = snapWeight(current + step)
		return
	}
	weights[id] = likeInsertWeight
}

// decrementWeight 对称回退 bumpWeight；低于初始插入值时视为该次 LIKE 新建的条目并删除。
func decrementWeight(weights map[uuid.UUID]float64, id uuid.UUID, step float64) {
	current, ok := weights[id]
	if !ok {
		return
	}
	next := snapWeight(current - step)
	if next < likeInsertWeight-weightEpsilon {
		delete(weights, id)
		return
	}
	weights[id] = next
}

// evictLowest 超出上限时淘汰权重最低的条目，同权重时先淘汰 ID 较小者。
func evictLowest(weights map[uuid.UUID]float64, limit int) {
	if limit <= 0 {
		return
	}
	for len(weights) > limit {
		var (
			victim uuid.UUID
			lowest float64
			found  bool
		)
		for id, w := range weights {
			if !found || w < lowest || (w == lowest && bytes.Compare(id[:], victim[:]) < 0) {
				victim, lowest, found = id, w, true
			}
		}
		delete(weights, victim)
	}
}

// trimWatchHistory 超出上限时按 lastWatchedAt 淘汰最旧条目。
func trimWatchHistory(history []po.WatchEntry, limit int) []po.WatchEntry {
	for limit > 0 && len(history) > limit {
		oldest := 0
		for i := 1; i < len(history); i++ {
			a, b := history[i], history[oldest]
			if a.LastWatchedAt.Before(b.LastWatchedAt) ||
				(a.LastWatchedAt.Equal(b.LastWatchedAt) && bytes.Compare(a.ItemID[:], b.ItemID[:]) < 0) {
				oldest = i
			}
		}
		history = append(history[:oldest], history[oldest+1:]...)
	}
	return history
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
