package cache

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/aircon-console/internal/config"
)

func TestRedisContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	redisPort := nat.Port("6379/tcp")

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{string(redisPort)},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(redisPort),
				wait.ForLog("Ready to accept connections"),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start container")
	defer func() {
		require.NoError(t, container.Terminate(ctx))
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, redisPort)
	require.NoError(t, err)

	cache, err := InitServer(ctx, config.RedisConnection{
		AddressRedis: host + ":" + port.Port(),
		DialTimeout:  5 * time.Second,
		TimeoutRedis: 5 * time.Second,
	})
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	require.NoError(t, cache.Set(ctx, "session:token:b1", "tok", time.Minute))

	var out string
	found, err := cache.Get(ctx, "session:token:b1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok", out)

	ttl, err := cache.Db.TTL(ctx, "session:token:b1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
