package repository_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/cartstore-demo/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}

func TestRedisKV(t *testing.T) {
	client, _ := setupTestRedis(t)

	testKeyValueStore(t, repository.NewRedisKV(client))
}

func TestRedisKV_SetHasNoTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	kv := repository.NewRedisKV(client)

	err := kv.Set(t.Context(), repository.DefaultKey, "[]")
	require.NoError(t, err)

	assert.True(t, mr.Exists(repository.DefaultKey))
	assert.Zero(t, mr.TTL(repository.DefaultKey))
}

func TestRedisKV_ServerDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	kv := repository.NewRedisKV(client)

	mr.Close()

	_, _, err := kv.Get(t.Context(), repository.DefaultKey)
	require.ErrorContains(t, err, "client.Get")
}
