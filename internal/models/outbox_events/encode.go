package outboxevents

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// EncodePayload 将事件载荷编码为 JSON。
func EncodePayload(evt *DomainEvent) ([]byte, error) {
	if evt == nil {
		return nil, fmt.Errorf("encode event: nil event")
	}
	switch payload := evt.Payload.(type) {
	case *InteractionRecorded:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", evt.Kind, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEventKind, evt.Payload)
	}
}

// DecodeInteractionRecorded 解析互动审计事件载荷。
func DecodeInteractionRecorded(data []byte) (*InteractionRecorded, error) {
	var payload InteractionRecorded
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode interaction recorded: %w", err)
	}
	return &payload, nil
}
