package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisCache(t *testing.T) {
	client := startRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "widget:v1:evt_1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "widget:v1:evt_1", "<html>1</html>", time.Minute))
	require.NoError(t, c.Set(ctx, "widget:v1:evt_2", "<html>2</html>", time.Minute))

	got, ok, err := c.Get(ctx, "widget:v1:evt_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<html>1</html>", got)

	ttl, err := client.TTL(ctx, "portal:cache:widget:v1:evt_1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, client.Set(ctx, "unrelated", "x", 0).Err())
	require.NoError(t, c.Purge(ctx))

	_, ok, err = c.Get(ctx, "widget:v1:evt_2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), client.Exists(ctx, "unrelated").Val())
}
