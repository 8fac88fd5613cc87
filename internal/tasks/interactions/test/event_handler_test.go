package interactions_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	"github.com/bionicotaku/lingo-services-ranking/internal/tasks/interactions"
	"github.com/bionicotaku/lingo-utils/txmanager"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	inputs []services.ApplyInput
	err    error
}

func (f *fakeApplier) ApplyInSession(_ context.Context, _ txmanager.Session, input services.ApplyInput) (*services.ApplyResult, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &services.ApplyResult{Profile: &po.AffinityProfile{UserID: input.UserID, Version: 1}}, nil
}

func newHandler(applier *fakeApplier) *interactions.EventHandler {
	return interactions.NewEventHandler(applier, log.NewStdLogger(io.Discard), nil)
}

func TestEventHandlerAppliesInteraction(t *testing.T) {
	applier := &fakeApplier{}
	handler := newHandler(applier)

	userID := uuid.New()
	itemID := uuid.New()
	occurred := time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)
	err := handler.Handle(context.Background(), nil, &interactions.Event{
		EventID:         "evt-1",
		UserID:          userID.String(),
		ItemID:          itemID.String(),
		Type:            "WATCH",
		DurationSeconds: 30,
		OccurredAt:      occurred,
	}, nil)
	require.NoError(t, err)

	require.Len(t, applier.inputs, 1)
	in := applier.inputs[0]
	require.Equal(t, userID, in.UserID)
	require.Equal(t, itemID, in.ItemID)
	require.Equal(t, po.InteractionWatch, in.Type)
	require.Equal(t, 30.0, in.DurationSeconds)
	require.Equal(t, occurred, in.OccurredAt)
	require.Equal(t, "evt-1", in.EventID)
}

func TestEventHandlerRejectsMalformedEvents(t *testing.T) {
	valid := uuid.NewString()
	cases := map[string]*interactions.Event{
		"bad user": {UserID: "nope", ItemID: valid, Type: "LIKE"},
		"nil user": {UserID: uuid.Nil.String(), ItemID: valid, Type: "LIKE"},
		"bad item": {UserID: valid, ItemID: "", Type: "LIKE"},
		"bad type": {UserID: valid, ItemID: valid, Type: "POKE"},
	}
	for name, evt := range cases {
		t.Run(name, func(t *testing.T) {
			applier := &fakeApplier{}
			err := newHandler(applier).Handle(context.Background(), nil, evt, nil)
			require.Error(t, err)
			require.True(t, kerrors.IsBadRequest(err))
			require.Empty(t, applier.inputs)
		})
	}

	require.Error(t, newHandler(&fakeApplier{}).Handle(context.Background(), nil, nil, nil))
}

func TestEventHandlerMapsApplyErrors(t *testing.T) {
	base := &interactions.Event{UserID: uuid.NewString(), ItemID: uuid.NewString(), Type: "LIKE"}

	err := newHandler(&fakeApplier{err: services.ErrItemNotFound}).Handle(context.Background(), nil, base, nil)
	require.NoError(t, err)

	err = newHandler(&fakeApplier{err: errors.Join(services.ErrInvalidArgument, errors.New("duration"))}).Handle(context.Background(), nil, base, nil)
	require.True(t, kerrors.IsBadRequest(err))

	err = newHandler(&fakeApplier{err: services.ErrUpdateConflict}).Handle(context.Background(), nil, base, nil)
	require.ErrorIs(t, err, services.ErrUpdateConflict)
}
