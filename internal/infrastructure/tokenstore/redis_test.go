package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newRedisContainer starts a throwaway redis and returns its address.
func newRedisContainer(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	skipWithoutDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

// skipWithoutDocker skips when no container runtime answers. Provider lookup
// panics instead of failing when no Docker host can be found at all.
func skipWithoutDocker(t *testing.T) {
	t.Helper()
	var healthy bool
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Logf("docker not available: %v", r)
			}
		}()
		provider, err := testcontainers.ProviderDocker.GetProvider()
		if err != nil {
			t.Logf("docker not available: %v", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Health closes the provider
		if err := provider.Health(ctx); err != nil {
			t.Logf("docker not healthy: %v", err)
			return
		}
		healthy = true
	}()
	if !healthy {
		t.Skip("Skipping integration test without a healthy Docker host")
	}
}

func TestSkipWithoutDockerSkipsCleanly(t *testing.T) {
	ok := t.Run("docker check", func(t *testing.T) {
		skipWithoutDocker(t)
	})
	assert.True(t, ok, "a missing docker host skips instead of failing")
}

func TestRedisStore(t *testing.T) {
	addr := newRedisContainer(t)

	s, err := NewRedisStore(context.Background(), RedisConfig{Addr: addr, KeyPrefix: "cartlink-test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storeContract(t, s)

	t.Run("keys are prefixed", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, TokenKey, "abc"))

		raw := redis.NewClient(&redis.Options{Addr: addr})
		defer raw.Close()

		v, err := raw.Get(ctx, "cartlink-test:token").Result()
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestNewRedisStoreWithClient_DefaultPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	s := NewRedisStoreWithClient(client, "")
	assert.Equal(t, defaultKeyPrefix, s.keyPrefix)
}
