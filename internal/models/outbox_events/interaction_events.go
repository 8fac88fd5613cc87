package outboxevents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewInteractionRecordedEvent 构造互动审计事件，聚合 ID 为用户 ID。
func NewInteractionRecordedEvent(eventID uuid.UUID, payload InteractionRecorded) (*DomainEvent, error) {
	if eventID == uuid.Nil {
		return nil, ErrInvalidEventID
	}
	if payload.UserID == uuid.Nil {
		return nil, fmt.Errorf("interaction event: user_id required")
	}
	if payload.ItemID == uuid.Nil {
		return nil, fmt.Errorf("interaction event: item_id required")
	}
	if payload.InteractionType == "" {
		return nil, fmt.Errorf("interaction event: type required")
	}
	occurredAt := payload.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	payload.OccurredAt = occurredAt
	return &DomainEvent{
		EventID:       eventID,
		Kind:          KindInteractionRecorded,
		AggregateID:   payload.UserID,
		AggregateType: AggregateTypeAffinityProfile,
		Version:       VersionFromTime(occurredAt),
		OccurredAt:    occurredAt,
		Payload:       &payload,
	}, nil
}
