package metadata_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/bionicotaku/lingo-services-ranking/internal/metadata"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func encodeClaims(t *testing.T, claims map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(payload)
}

func TestExtractUserIDFromUserInfo_SubClaim(t *testing.T) {
	header := encodeClaims(t, map[string]any{
		"aud":   "authenticated",
		"email": "viewer@example.com",
		"sub":   "f2c9f4f8-4a4b-4e28-9c5b-4d3b2190f155",
	})

	userID, err := metadata.ExtractUserIDFromUserInfo(header)
	require.NoError(t, err)
	require.Equal(t, "f2c9f4f8-4a4b-4e28-9c5b-4d3b2190f155", userID)
}

func TestExtractUserIDFromUserInfo_Fallbacks(t *testing.T) {
	userID, err := metadata.ExtractUserIDFromUserInfo(encodeClaims(t, map[string]any{"user_id": "auth0|abc123"}))
	require.NoError(t, err)
	require.Equal(t, "auth0|abc123", userID)

	std := base64.StdEncoding.EncodeToString([]byte(`{"uid":"legacy-1"}`))
	userID, err = metadata.ExtractUserIDFromUserInfo(std)
	require.NoError(t, err)
	require.Equal(t, "legacy-1", userID)
}

func TestExtractUserIDFromUserInfo_Invalid(t *testing.T) {
	_, err := metadata.ExtractUserIDFromUserInfo("!!!not-base64!!!")
	require.Error(t, err)

	userID, err := metadata.ExtractUserIDFromUserInfo("")
	require.NoError(t, err)
	require.Empty(t, userID)
}

func TestHandlerMetadata_ContextRoundTrip(t *testing.T) {
	meta := metadata.HandlerMetadata{UserID: "7b61d0ed-5ba1-4f21-a636-7f9f1a9f9a01", RequestID: "req-1"}
	require.True(t, meta.HasViewer())

	ctx := metadata.Inject(context.Background(), meta)
	stored, ok := metadata.FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, meta, stored)

	empty := metadata.Inject(context.Background(), metadata.HandlerMetadata{})
	_, ok = metadata.FromContext(empty)
	require.False(t, ok)

	require.False(t, metadata.HandlerMetadata{UserID: "auth0|abc"}.HasViewer())
}
