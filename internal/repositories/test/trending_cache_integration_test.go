package repositories_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/models/vo"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("skip trending cache integration test: cannot start redis container: %v", err)
	}
	t.Cleanup(func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(termCtx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestTrendingCacheRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := startRedis(ctx, t)
	repo := repositories.NewTrendingCacheRepository(client, repositories.TrendingCacheConfig{TTL: time.Minute}, log.NewStdLogger(io.Discard))

	_, ok := repo.Get(ctx, 1, 20)
	require.False(t, ok)

	itemID := uuid.New()
	page := &vo.RankedPage{
		Items: []vo.RankedItem{{
			Item: &po.CatalogItem{
				ID:          itemID,
				Title:       "Cached",
				ViewCount:   99,
				IsPublished: true,
				Visibility:  po.VisibilityPublic,
			},
			Score:        1.5,
			CategoryName: "Music",
		}},
		Page:       1,
		PageSize:   20,
		TotalItems: 1,
		TotalPages: 1,
	}
	repo.Set(ctx, 1, 20, page)

	cached, ok := repo.Get(ctx, 1, 20)
	require.True(t, ok)
	require.Len(t, cached.Items, 1)
	require.Equal(t, itemID, cached.Items[0].Item.ID)
	require.Equal(t, int64(99), cached.Items[0].Item.ViewCount)
	require.InDelta(t, 1.5, cached.Items[0].Score, 1e-9)
	require.Equal(t, int64(1), cached.TotalItems)

	ttl, err := client.TTL(ctx, repositories.TrendingCacheKey(1, 20)).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Minute)

	_, ok = repo.Get(ctx, 2, 20)
	require.False(t, ok)
}

func TestTrendingCacheRepository_IgnoresCorruptEntries(t *testing.T) {
	ctx := context.Background()
	client := startRedis(ctx, t)
	repo := repositories.NewTrendingCacheRepository(client, repositories.TrendingCacheConfig{}, log.NewStdLogger(io.Discard))

	require.NoError(t, client.Set(ctx, repositories.TrendingCacheKey(1, 10), "not-json", time.Minute).Err())
	_, ok := repo.Get(ctx, 1, 10)
	require.False(t, ok)
}

func TestTrendingCacheRepository_DisabledWithoutClient(t *testing.T) {
	repo := repositories.NewTrendingCacheRepository(nil, repositories.TrendingCacheConfig{}, log.NewStdLogger(io.Discard))
	repo.Set(context.Background(), 1, 20, &vo.RankedPage{Page: 1})
	_, ok := repo.Get(context.Background(), 1, 20)
	require.False(t, ok)
}
