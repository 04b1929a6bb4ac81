package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository/storage"
)

const (
	containerTTL    = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "7-alpine"

	gameKeyPrefix = "game:"
)

// Suite - a throwaway Redis server holding the games of one test.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

// New - starts a Redis container and connects to it the way the application does.
// The test is skipped in short mode and when no docker daemon is reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis suite needs docker, skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	pool, resource := startRedis(t)

	var client *redis.Client

	// the server inside the container may still be loading
	err := pool.Retry(func() error {
		var connErr error
		client, connErr = storage.New(ctx, storage.RedisOptions{Addr: resource.GetHostPort(redisPort)})
		return connErr
	})
	if err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return ctx, &Suite{
		T:       t,
		Storage: client,
	}
}

// StoreRaw - writes value under the key of game id, bypassing the repository.
func (that *Suite) StoreRaw(ctx context.Context, id, value string) {
	that.Helper()

	if err := that.Storage.Set(ctx, gameKeyPrefix+id, value, 0).Err(); err != nil {
		that.Fatalf("could not store raw game %s: %v", id, err)
	}
}

// TTL - remaining lifetime of the key of game id.
func (that *Suite) TTL(ctx context.Context, id string) time.Duration {
	that.Helper()

	ttl, err := that.Storage.TTL(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		that.Fatalf("could not read ttl of game %s: %v", id, err)
	}

	return ttl
}

// startRedis - runs a Redis container without persistence, purged when the test ends.
func startRedis(t *testing.T) (*dockertest.Pool, *dockertest.Resource) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	pool.MaxWait = maxWaitDuration

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Cmd:        []string{"redis-server", "--save", "", "--appendonly", "no"},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	// hard kill in case the cleanup never runs
	_ = resource.Expire(containerTTL)

	return pool, resource
}
