package repositories

import (
	"context"
	"fmt"
	"time"

	outboxevents "github.com/bionicotaku/lingo-services-ranking/internal/models/outbox_events"

	outboxpkg "github.com/bionicotaku/lingo-utils/outbox"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxMessage 描述需要写入 outbox_events 的事件数据。
type OutboxMessage = store.Message

// OutboxEvent 表示从数据库读取的待发布事件。
type OutboxEvent = store.Event

// InboxEvent 表示已记录的外部事件。
type InboxEvent = store.InboxEvent

func newSharedStore(db *pgxpool.Pool, logger log.Logger, schema, purpose string) *store.Repository {
	repo, err := outboxpkg.NewRepository(db, logger, outboxpkg.RepositoryOptions{Schema: schema})
	if err != nil {
		log.NewHelper(logger).Errorw("msg", "init "+purpose+" repository failed", "schema", schema, "error", err)
		return store.NewRepository(db, logger)
	}
	return repo
}

// OutboxRepository 负责把 ranking 领域事件写入 ranking.outbox_events。
type OutboxRepository struct {
	delegate *store.Repository
}

// NewOutboxRepository 构建 Outbox 仓储。
func NewOutboxRepository(db *pgxpool.Pool, logger log.Logger, cfg outboxcfg.Config) *OutboxRepository {
	return &OutboxRepository{delegate: newSharedStore(db, logger, cfg.Schema, "outbox")}
}

// Enqueue 在事务内插入 Outbox 事件。
func (r *OutboxRepository) Enqueue(ctx context.Context, sess txmanager.Session, msg OutboxMessage) error {
	return r.delegate.Enqueue(ctx, sess, msg)
}

// BuildMessage 将领域事件编码为 Outbox 消息，载荷为 JSON。
func BuildMessage(evt *outboxevents.DomainEvent, traceID string) (OutboxMessage, error) {
	if evt == nil {
		return OutboxMessage{}, fmt.Errorf("build outbox message: nil event")
	}
	payload, err := outboxevents.EncodePayload(evt)
	if err != nil {
		return OutboxMessage{}, err
	}
	return OutboxMessage{
		EventID:       evt.EventID,
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		EventType:     evt.Kind.String(),
		Payload:       payload,
		Headers:       outboxevents.BuildAttributes(evt, outboxevents.SchemaVersionV1, traceID),
		AvailableAt:   evt.OccurredAt,
	}, nil
}

// ClaimPending 返回一批待发布的 Outbox 事件。
func (r *OutboxRepository) ClaimPending(ctx context.Context, availableBefore, staleBefore time.Time, limit int, lockToken string) ([]OutboxEvent, error) {
	return r.delegate.ClaimPending(ctx, availableBefore, staleBefore, limit, lockToken)
}

// MarkPublished 更新事件状态为已发布。
func (r *OutboxRepository) MarkPublished(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lockToken string, publishedAt time.Time) error {
	return r.delegate.MarkPublished(ctx, sess, eventID, lockToken, publishedAt)
}

// Reschedule 将事件延后发布并记录错误信息。
func (r *OutboxRepository) Reschedule(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lockToken string, nextAvailable time.Time, lastErr string) error {
	return r.delegate.Reschedule(ctx, sess, eventID, lockToken, nextAvailable, lastErr)
}

// CountPending 返回当前未发布的事件数量。
func (r *OutboxRepository) CountPending(ctx context.Context) (int64, error) {
	return r.delegate.CountPending(ctx)
}

// Shared 返回底层通用实现，供 publisher runner 使用。
func (r *OutboxRepository) Shared() *store.Repository {
	return r.delegate
}

// InboxRepository 记录外部互动事件，保证同一 event_id 只处理一次。
type InboxRepository struct {
	delegate *store.Repository
}

// NewInboxRepository 构建 Inbox 仓储。
func NewInboxRepository(db *pgxpool.Pool, logger log.Logger, cfg outboxcfg.Config) *InboxRepository {
	return &InboxRepository{delegate: newSharedStore(db, logger, cfg.Schema, "inbox")}
}

// Shared 暴露底层共享仓储，供 inbox runner 使用。
func (r *InboxRepository) Shared() *store.Repository {
	return r.delegate
}
