package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartstore-demo/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_kv_entries.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// testKeyValueStore checks the behaviour every backend must share.
func testKeyValueStore(t *testing.T, kv port.KeyValueStore) {
	t.Helper()

	t.Run("get absent key: not found", func(t *testing.T) {
		value, found, err := kv.Get(t.Context(), uuid.NewString())
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set then get: ok", func(t *testing.T) {
		ctx := t.Context()
		key := "@test/" + uuid.NewString()

		require.NoError(t, kv.Set(ctx, key, `[{"id":"1"}]`))

		value, found, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"1"}]`, value)
	})

	t.Run("set twice: overwritten", func(t *testing.T) {
		ctx := t.Context()
		key := "@test/" + uuid.NewString()

		require.NoError(t, kv.Set(ctx, key, "first"))
		require.NoError(t, kv.Set(ctx, key, "second"))

		value, found, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "second", value)
	})

	t.Run("remove: not found afterwards", func(t *testing.T) {
		ctx := t.Context()
		key := "@test/" + uuid.NewString()

		require.NoError(t, kv.Set(ctx, key, "value"))
		require.NoError(t, kv.Remove(ctx, key))

		_, found, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("remove absent key: ok", func(t *testing.T) {
		require.NoError(t, kv.Remove(t.Context(), uuid.NewString()))
	})

	t.Run("empty key: error", func(t *testing.T) {
		ctx := t.Context()

		_, _, err := kv.Get(ctx, "")
		require.EqualError(t, err, "key is empty")

		err = kv.Set(ctx, "", "value")
		require.EqualError(t, err, "key is empty")

		err = kv.Remove(ctx, "")
		require.EqualError(t, err, "key is empty")
	})
}
