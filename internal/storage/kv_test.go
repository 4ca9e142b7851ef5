package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-tracker/internal/testutil"
)

func runKVContract(t *testing.T, kv KV) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get(ctx, "tasks")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "tasks", []byte(`[{"id":1}]`)))

		got, err := kv.Get(ctx, "tasks")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":1}]`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "loggedIn", []byte("false")))
		require.NoError(t, kv.Set(ctx, "loggedIn", []byte("true")))

		got, err := kv.Get(ctx, "loggedIn")
		require.NoError(t, err)
		assert.Equal(t, "true", string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "user", []byte(`{"username":"admin"}`)))
		require.NoError(t, kv.Delete(ctx, "user"))
		require.NoError(t, kv.Delete(ctx, "user"), "deleting a missing key is not an error")

		_, err := kv.Get(ctx, "user")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemory(t *testing.T) {
	kv := NewMemory()
	defer kv.Close()
	runKVContract(t, kv)
}

func TestMemory_CopiesValues(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	value := []byte("[]")
	require.NoError(t, kv.Set(ctx, "tasks", value))
	value[0] = 'x'

	got, err := kv.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.db")
	kv, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer kv.Close()

	runKVContract(t, kv)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	kv, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	url := testutil.PostgresURL(t)

	kv, err := Open(context.Background(), Options{Driver: DriverPostgres, DatabaseURL: url})
	require.NoError(t, err)
	defer kv.Close()

	runKVContract(t, kv)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "redis"})
	assert.Error(t, err)
}
