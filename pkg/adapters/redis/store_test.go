package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/glint/pkg/adapters/redis"
	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports/tests"
	"github.com/aretw0/glint/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)

	store := redis.NewFromClient(client, redis.WithDatabase("glint"), redis.WithType("session"))
	tests.RunAdapterContract(t, store)
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client)
	_, err := session.New(session.Config{Adapter: store, Prefix: "sess:"})
	require.NoError(t, err)

	assert.Equal(t, "glint", store.Database())
	assert.Equal(t, "session", store.Type())

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "sess:my-session", domain.Record{"user": "jdoe"}))

	assert.True(t, mr.Exists("glint:session:sess:my-session"), "Expected namespaced key to exist")
	assert.True(t, mr.Exists("glint:session#index"), "Expected index to exist")

	raw, err := mr.Get("glint:session:sess:my-session")
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"jdoe"}`, raw)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	key := "session-ttl"

	require.NoError(t, store.Save(ctx, key, domain.Record{"foo": "bar"}))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, key)

	// Key expiration is driven by miniredis time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Index pruning compares against wall clock.
	time.Sleep(1200 * time.Millisecond)

	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_BackendError(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	mr.SetError("ERR backend exploded")

	_, err := store.Load(ctx, "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrSessionNotFound))

	assert.Error(t, store.Save(ctx, "k", domain.Record{}))
	assert.Error(t, store.Delete(ctx, "k"))
	assert.Error(t, store.Ping(ctx))
}

func TestRedisStore_BridgePassesErrorsThrough(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	bridge, err := session.New(session.Config{Adapter: store})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, bridge.Set(ctx, "abc", domain.Record{"cookie": map[string]any{"maxAge": 120000}}))
	rec, err := bridge.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 120.0, rec["_ttl"])

	mr.SetError("boom")
	_, err = bridge.Get(ctx, "abc")
	assert.ErrorContains(t, err, "failed to get from redis")
}
