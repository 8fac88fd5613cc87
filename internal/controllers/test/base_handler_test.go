package controllers_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/controllers"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/stretchr/testify/require"
)

type headerCarrier map[string]string

func (h headerCarrier) Get(key string) string      { return h[strings.ToLower(key)] }
func (h headerCarrier) Set(key, value string)      { h[strings.ToLower(key)] = value }
func (h headerCarrier) Add(key, value string)      { h[strings.ToLower(key)] = value }
func (h headerCarrier) Keys() []string             { return nil }
func (h headerCarrier) Values(key string) []string { return []string{h.Get(key)} }

type fakeTransport struct {
	header headerCarrier
}

func (t fakeTransport) Kind() transport.Kind            { return transport.KindHTTP }
func (t fakeTransport) Endpoint() string                { return "" }
func (t fakeTransport) Operation() string               { return "" }
func (t fakeTransport) RequestHeader() transport.Header { return t.header }
func (t fakeTransport) ReplyHeader() transport.Header   { return headerCarrier{} }

func contextWithHeaders(headers map[string]string) context.Context {
	carrier := headerCarrier{}
	for k, v := range headers {
		carrier.Set(k, v)
	}
	return transport.NewServerContext(context.Background(), fakeTransport{header: carrier})
}

func userInfoHeader(sub string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + sub + `","email":"user@example.com"}`))
}

func TestBaseHandlerExtractMetadata(t *testing.T) {
	header := userInfoHeader("7b61d0ed-5ba1-4f21-a636-7f9f1a9f9a01")
	ctx := contextWithHeaders(map[string]string{
		"x-apigateway-api-userinfo": header,
		"x-request-id":              "req-456",
	})

	handler := controllers.NewBaseHandler(controllers.HandlerTimeouts{})
	meta := handler.ExtractMetadata(ctx)

	require.Equal(t, "7b61d0ed-5ba1-4f21-a636-7f9f1a9f9a01", meta.UserID)
	require.Equal(t, header, meta.RawUserInfo)
	require.False(t, meta.InvalidUserInfo)
	require.Equal(t, "req-456", meta.RequestID)

	newCtx := controllers.InjectHandlerMetadata(ctx, meta)
	stored, ok := controllers.HandlerMetadataFromContext(newCtx)
	require.True(t, ok)
	require.Equal(t, meta, stored)
}

func TestBaseHandlerInvalidUserInfo(t *testing.T) {
	ctx := contextWithHeaders(map[string]string{"x-apigateway-api-userinfo": "!!!invalid!!!"})

	meta := controllers.NewBaseHandler(controllers.HandlerTimeouts{}).ExtractMetadata(ctx)
	require.True(t, meta.InvalidUserInfo)
	require.Empty(t, meta.UserID)
}

func TestBaseHandlerWithoutTransport(t *testing.T) {
	meta := controllers.NewBaseHandler(controllers.HandlerTimeouts{}).ExtractMetadata(context.Background())
	require.True(t, meta.IsZero())
}

func TestBaseHandlerWithTimeout(t *testing.T) {
	handler := controllers.NewBaseHandler(controllers.HandlerTimeouts{Command: 200 * time.Millisecond})
	ctx, cancel := handler.WithTimeout(context.Background(), controllers.HandlerTypeCommand)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	remaining := time.Until(deadline)
	require.Greater(t, remaining, 150*time.Millisecond)
	require.LessOrEqual(t, remaining, 200*time.Millisecond)

	queryCtx, cancelQuery := handler.WithTimeout(context.Background(), controllers.HandlerTypeQuery)
	defer cancelQuery()
	_, ok = queryCtx.Deadline()
	require.True(t, ok)
}
