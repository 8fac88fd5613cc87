package outboxevents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind 标识领域事件类型。
type Kind int

// 领域事件类型常量。
const (
	// KindUnknown 表示未识别的事件类型。
	KindUnknown Kind = iota
	// KindInteractionRecorded 表示一次互动已作用于偏好档案。
	KindInteractionRecorded
)

func (k Kind) String() string {
	switch k {
	case KindInteractionRecorded:
		return "ranking.interaction.recorded"
	default:
		return "ranking.event.unknown"
	}
}

// DomainEvent 表示领域层生成的标准事件。
type DomainEvent struct {
	EventID       uuid.UUID
	Kind          Kind
	AggregateID   uuid.UUID
	AggregateType string
	Version       int64
	OccurredAt    time.Time
	Payload       any
}

// InteractionRecorded 描述互动审计事件载荷。
type InteractionRecorded struct {
	UserID          uuid.UUID `json:"user_id"`
	ItemID          uuid.UUID `json:"item_id"`
	InteractionType string    `json:"interaction_type"`
	DurationSeconds float64   `json:"duration_seconds"`
	OccurredAt      time.Time `json:"occurred_at"`
	ProfileVersion  int64     `json:"profile_version"`
	WeightsChanged  bool      `json:"weights_changed"`
	SourceEventID   string    `json:"source_event_id,omitempty"`
}

const (
	// AggregateTypeAffinityProfile 标识偏好档案聚合类型。
	AggregateTypeAffinityProfile = "ranking.affinity_profile"
	// SchemaVersionV1 描述事件载荷的当前 schema 版本。
	SchemaVersionV1 = "v1"
	// ContentTypeJSON 标识载荷编码。
	ContentTypeJSON = "application/json"
)

var (
	// ErrInvalidEventID 表示未提供合法的事件 ID。
	ErrInvalidEventID = fmt.Errorf("event builder: event id is required")
	// ErrUnknownEventKind 表示未识别的事件类型。
	ErrUnknownEventKind = fmt.Errorf("event builder: unknown event kind")
)
