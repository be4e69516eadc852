package kv

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "localProducts")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "localProducts", `[{"id":1}]`))
	v, ok, err := s.Get(ctx, "localProducts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, s.Set(ctx, "localProducts", `[]`))
	v, _, err = s.Get(ctx, "localProducts")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove(ctx, "localProducts"))
	_, ok, err = s.Get(ctx, "localProducts")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, "neverSet"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreClear(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), "a", "1"))
	s.Clear()
	_, ok, err := s.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	exerciseStore(t, NewRedisStore(rdb, "catalog:"))
}

func TestRedisStorePrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	s := NewRedisStore(rdb, "catalog:")
	require.NoError(t, s.Set(context.Background(), "productFavorites", "[1,2]"))

	got, err := mr.Get("catalog:productFavorites")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", got)
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	_, _, err := NewRedisStore(rdb, "").Get(context.Background(), "k")
	assert.Error(t, err)
}

// TestPostgresStore needs a reachable database in TEST_DATABASE_URL.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewPostgresStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Remove(context.Background(), "localProducts"))
	exerciseStore(t, s)
}
