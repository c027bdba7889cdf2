package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAdapterContract is a reusable test suite that verifies if an adapter complies with ports.Adapter.
// Adapters implementing ports.Lister are also checked for listing.
func RunAdapterContract(t *testing.T, adapter ports.Adapter) {
	t.Helper()

	ctx := context.Background()
	key := "contract:" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := domain.Record{
			"user":   "jdoe",
			"count":  42,
			"cookie": map[string]any{"maxAge": 120000, "path": "/"},
			"_ttl":   int64(120),
		}

		require.NoError(t, adapter.Save(ctx, key, rec), "Save should not return error")

		loaded, err := adapter.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		require.NotNil(t, loaded)
		assert.Equal(t, "jdoe", loaded["user"])
		// JSON persistence turns numbers into float64; only check presence.
		assert.NotNil(t, loaded["count"])
		assert.NotNil(t, loaded["_ttl"])

		maxAge, ok := loaded.MaxAge()
		assert.True(t, ok, "nested cookie should survive persistence")
		assert.Equal(t, 120000.0, maxAge)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, adapter.Save(ctx, key, domain.Record{"v": "one"}))
		require.NoError(t, adapter.Save(ctx, key, domain.Record{"v": "two"}))

		loaded, err := adapter.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "two", loaded["v"])
		assert.NotContains(t, loaded, "user")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		rec, err := adapter.Load(ctx, "non-existent-"+key)
		AssertAbsent(t, rec, err)
	})

	t.Run("Unusual Keys", func(t *testing.T) {
		odd := "pfx:a/b c?d%20" + key
		require.NoError(t, adapter.Save(ctx, odd, domain.Record{"odd": true}))
		defer func() { _ = adapter.Delete(ctx, odd) }()

		loaded, err := adapter.Load(ctx, odd)
		require.NoError(t, err)
		assert.Equal(t, true, loaded["odd"])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, adapter.Save(ctx, key, domain.Record{"v": 1}))
		require.NoError(t, adapter.Delete(ctx, key), "Delete should not return error")

		rec, err := adapter.Load(ctx, key)
		AssertAbsent(t, rec, err)
	})

	t.Run("Delete Non-Existent", func(t *testing.T) {
		assert.NoError(t, adapter.Delete(ctx, "never-saved-"+key))
	})

	if lister, ok := adapter.(ports.Lister); ok {
		t.Run("List", func(t *testing.T) {
			k1 := key + "-1"
			k2 := key + "-2"
			require.NoError(t, adapter.Save(ctx, k1, domain.Record{}))
			require.NoError(t, adapter.Save(ctx, k2, domain.Record{}))
			defer func() {
				_ = adapter.Delete(ctx, k1)
				_ = adapter.Delete(ctx, k2)
			}()

			keys, err := lister.List(ctx)
			require.NoError(t, err)
			assert.Contains(t, keys, k1)
			assert.Contains(t, keys, k2)
		})
	}

	if ns := adapter.Namespace(); ns != nil {
		t.Run("Namespace", func(t *testing.T) {
			db, typ := ns.Database(), ns.Type()
			defer func() {
				ns.SetDatabase(db)
				ns.SetType(typ)
			}()

			require.NoError(t, adapter.Save(ctx, key, domain.Record{"where": "default"}))
			defer func() { _ = adapter.Delete(ctx, key) }()

			ns.SetDatabase("contract-db")
			ns.SetType("contract-type")
			assert.Equal(t, "contract-db", ns.Database())
			assert.Equal(t, "contract-type", ns.Type())

			// Records are partitioned by namespace.
			rec, err := adapter.Load(ctx, key)
			AssertAbsent(t, rec, err)
		})
	}
}

// AssertAbsent checks the two accepted ways of reporting a missing key.
func AssertAbsent(t *testing.T, rec domain.Record, err error) {
	t.Helper()
	if err != nil {
		assert.True(t, errors.Is(err, domain.ErrSessionNotFound), "expected ErrSessionNotFound, got %v", err)
		return
	}
	assert.Nil(t, rec, "expected no record")
}
