package interactions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecoderJSON(t *testing.T) {
	decoder := newEventDecoder()
	payload := []byte(`{"event_id":" evt-1 ","user_id":"7b61d0ed-1111-4c3e-9d93-aaaaaaaaaaaa","item_id":"8c22ebce-2222-4e87-bbbb-bbbbbbbbbbbb","type":"watch","duration_seconds":12.5,"occurred_at":"2025-10-26T20:00:00+08:00"}`)

	evt, err := decoder.Decode(payload)
	require.NoError(t, err)
	require.Equal(t, "evt-1", evt.EventID)
	require.Equal(t, "WATCH", evt.Type)
	require.Equal(t, 12.5, evt.DurationSeconds)
	require.Equal(t, time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC), evt.OccurredAt)
	require.Equal(t, time.UTC, evt.OccurredAt.Location())
	require.Equal(t, EventVersion, evt.Version)
}

func TestDecoderKeepsZeroOccurredAt(t *testing.T) {
	evt, err := newEventDecoder().Decode([]byte(`{"user_id":"u","item_id":"i","type":"LIKE","version":"v2"}`))
	require.NoError(t, err)
	require.True(t, evt.OccurredAt.IsZero())
	require.Equal(t, "v2", evt.Version)
}

func TestDecoderRejectsMalformedPayload(t *testing.T) {
	_, err := newEventDecoder().Decode([]byte(`{"user_id":`))
	require.Error(t, err)
}
