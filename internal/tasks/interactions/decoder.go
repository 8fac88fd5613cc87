// Package interactions 消费上游互动事件，经 Inbox 去重后折算进用户偏好档案。
package interactions

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// EventVersion 表示互动事件协议的版本常量。
const EventVersion = "v1"

// Event 描述上游发布的一次用户互动。
type Event struct {
	EventID         string    `json:"event_id"`
	UserID          string    `json:"user_id"`
	ItemID          string    `json:"item_id"`
	Type            string    `json:"type"`
	DurationSeconds float64   `json:"duration_seconds"`
	OccurredAt      time.Time `json:"occurred_at"`
	Version         string    `json:"version"`
}

type eventDecoder struct{}

func newEventDecoder() *eventDecoder {
	return &eventDecoder{}
}

// Decode 将 JSON 载荷解码为 Event。
func (d *eventDecoder) Decode(data []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("interactions: decode payload: %w", err)
	}
	normalizeEvent(&evt)
	return &evt, nil
}

// normalizeEvent 去除空白并补足 Version；OccurredAt 缺省交由偏好更新器处理。
func normalizeEvent(evt *Event) {
	evt.EventID = strings.TrimSpace(evt.EventID)
	evt.UserID = strings.TrimSpace(evt.UserID)
	evt.ItemID = strings.TrimSpace(evt.ItemID)
	evt.Type = strings.ToUpper(strings.TrimSpace(evt.Type))
	if !evt.OccurredAt.IsZero() {
		evt.OccurredAt = evt.OccurredAt.UTC()
	}
	if strings.TrimSpace(evt.Version) == "" {
		evt.Version = EventVersion
	}
}
