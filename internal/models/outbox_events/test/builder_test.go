package outboxevents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	outboxevents "github.com/bionicotaku/lingo-services-ranking/internal/models/outbox_events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewInteractionRecordedEvent(t *testing.T) {
	now := time.Date(2025, 10, 24, 12, 0, 0, 0, time.FixedZone("x", 3600))
	userID := uuid.New()
	itemID := uuid.New()
	evtID := uuid.New()

	evt, err := outboxevents.NewInteractionRecordedEvent(evtID, outboxevents.InteractionRecorded{
		UserID:          userID,
		ItemID:          itemID,
		InteractionType: "LIKE",
		OccurredAt:      now,
		ProfileVersion:  3,
		WeightsChanged:  true,
	})
	require.NoError(t, err)
	require.Equal(t, outboxevents.KindInteractionRecorded, evt.Kind)
	require.Equal(t, "ranking.interaction.recorded", evt.Kind.String())
	require.Equal(t, userID, evt.AggregateID)
	require.Equal(t, outboxevents.AggregateTypeAffinityProfile, evt.AggregateType)
	require.True(t, evt.OccurredAt.Equal(now))
	require.Equal(t, time.UTC, evt.OccurredAt.Location())
	require.NotZero(t, evt.Version)

	data, err := outboxevents.EncodePayload(evt)
	require.NoError(t, err)
	decoded, err := outboxevents.DecodeInteractionRecorded(data)
	require.NoError(t, err)
	require.Equal(t, itemID, decoded.ItemID)
	require.Equal(t, "LIKE", decoded.InteractionType)
	require.Equal(t, int64(3), decoded.ProfileVersion)
	require.True(t, decoded.WeightsChanged)
}

func TestNewInteractionRecordedEvent_Validation(t *testing.T) {
	_, err := outboxevents.NewInteractionRecordedEvent(uuid.Nil, outboxevents.InteractionRecorded{})
	require.ErrorIs(t, err, outboxevents.ErrInvalidEventID)

	_, err = outboxevents.NewInteractionRecordedEvent(uuid.New(), outboxevents.InteractionRecorded{ItemID: uuid.New(), InteractionType: "WATCH"})
	require.Error(t, err)

	_, err = outboxevents.NewInteractionRecordedEvent(uuid.New(), outboxevents.InteractionRecorded{UserID: uuid.New(), InteractionType: "WATCH"})
	require.Error(t, err)

	_, err = outboxevents.NewInteractionRecordedEvent(uuid.New(), outboxevents.InteractionRecorded{UserID: uuid.New(), ItemID: uuid.New()})
	require.Error(t, err)
}

func TestEncodePayload_UnknownPayload(t *testing.T) {
	_, err := outboxevents.EncodePayload(&outboxevents.DomainEvent{Payload: "oops"})
	require.True(t, errors.Is(err, outboxevents.ErrUnknownEventKind))

	_, err = outboxevents.EncodePayload(nil)
	require.Error(t, err)
}

func TestBuildAttributes(t *testing.T) {
	evt, err := outboxevents.NewInteractionRecordedEvent(uuid.New(), outboxevents.InteractionRecorded{
		UserID:          uuid.New(),
		ItemID:          uuid.New(),
		InteractionType: "WATCH",
	})
	require.NoError(t, err)

	attrs := outboxevents.BuildAttributes(evt, "", "trace-1")
	require.Equal(t, outboxevents.SchemaVersionV1, attrs["schema_version"])
	require.Equal(t, "ranking.interaction.recorded", attrs["event_type"])
	require.Equal(t, evt.AggregateID.String(), attrs["aggregate_id"])
	require.Equal(t, "trace-1", attrs["trace_id"])
	require.Equal(t, outboxevents.ContentTypeJSON, attrs["content_type"])

	require.Empty(t, outboxevents.TraceIDFromContext(context.Background()))
}
