package interactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// PreferenceApplier 为 Handler 所需的偏好更新能力，在 Inbox 事务内执行。
type PreferenceApplier interface {
	ApplyInSession(ctx context.Context, sess txmanager.Session, input services.ApplyInput) (*services.ApplyResult, error)
}

var _ PreferenceApplier = (*services.PreferenceUpdater)(nil)

// EventHandler 将互动事件交给偏好更新器。
type EventHandler struct {
	applier PreferenceApplier
	log     *log.Helper
	metrics *metrics
	now     func() time.Time
}

// NewEventHandler 构造互动事件处理器。
func NewEventHandler(applier PreferenceApplier, logger log.Logger, metrics *metrics) *EventHandler {
	return &EventHandler{
		applier: applier,
		log:     log.NewHelper(logger),
		metrics: metrics,
		now:     time.Now,
	}
}

// Handle 校验事件并在 Inbox 事务中应用；条目不存在时跳过，载荷非法时返回 BadRequest。
func (h *EventHandler) Handle(ctx context.Context, sess txmanager.Session, evt *Event, _ *store.InboxEvent) error {
	if evt == nil {
		return fmt.Errorf("interactions: nil event")
	}

	userID, err := uuid.Parse(evt.UserID)
	if err != nil || userID == uuid.Nil {
		return kerrors.BadRequest("invalid-user-id", "invalid user_id")
	}
	itemID, err := uuid.Parse(evt.ItemID)
	if err != nil || itemID == uuid.Nil {
		return kerrors.BadRequest("invalid-item-id", "invalid item_id")
	}
	typ, err := po.ParseInteractionType(evt.Type)
	if err != nil {
		return kerrors.BadRequest("invalid-type", err.Error())
	}

	_, err = h.applier.ApplyInSession(ctx, sess, services.ApplyInput{
		UserID:          userID,
		ItemID:          itemID,
		Type:            typ,
		DurationSeconds: evt.DurationSeconds,
		OccurredAt:      evt.OccurredAt,
		EventID:         evt.EventID,
	})
	switch {
	case err == nil:
		h.metrics.recordSuccess(ctx, typ.String(), evt.OccurredAt, h.now())
		return nil
	case errors.Is(err, services.ErrItemNotFound):
		h.log.WithContext(ctx).Warnf("skip interaction for unknown item: user=%s item=%s type=%s", userID, itemID, typ)
		h.metrics.recordOutcome(ctx, typ.String(), "skipped")
		return nil
	case errors.Is(err, services.ErrInvalidArgument):
		h.metrics.recordOutcome(ctx, typ.String(), "rejected")
		return kerrors.BadRequest("invalid-interaction", err.Error())
	default:
		h.metrics.recordOutcome(ctx, typ.String(), "failure")
		return err
	}
}
