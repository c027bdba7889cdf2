package session_test

import (
	"context"
	"testing"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_LifecycleHooks(t *testing.T) {
	var events []domain.StoreEvent
	record := func(_ context.Context, ev *domain.StoreEvent) {
		events = append(events, *ev)
	}
	hooks := domain.LifecycleHooks{
		OnLoad:       record,
		OnSave:       record,
		OnDestroy:    record,
		OnRegenerate: record,
	}

	b, _ := newBridge(t, session.Config{Prefix: "h:"},
		session.WithLifecycleHooks(hooks),
		session.WithIDGenerator(func() string { return "fresh" }),
	)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "sid", domain.Record{}))
	_, err := b.Get(ctx, "sid")
	require.NoError(t, err)
	_, err = b.Get(ctx, "missing")
	require.NoError(t, err)
	newSID, err := b.Regenerate(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "fresh", newSID)

	types := make([]domain.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
		assert.False(t, ev.Timestamp.IsZero())
	}
	assert.Equal(t, []domain.EventType{
		domain.EventSave,
		domain.EventLoad,
		domain.EventLoad,
		domain.EventDestroy,
		domain.EventRegenerate,
	}, types)

	assert.Equal(t, "h:sid", events[0].StorageKey)
	assert.True(t, events[1].Found)
	assert.False(t, events[2].Found)
	assert.Equal(t, "fresh", events[4].NewSessionID)
}

func TestBridge_HooksSkippedOnError(t *testing.T) {
	adapter := NewFakeAdapter()
	adapter.SaveErr = errBackend

	called := false
	b, _ := newBridge(t, session.Config{Adapter: adapter}, session.WithLifecycleHooks(domain.LifecycleHooks{
		OnSave: func(context.Context, *domain.StoreEvent) { called = true },
	}))

	assert.Error(t, b.Set(context.Background(), "sid", nil))
	assert.False(t, called)
}

func TestBridge_Regenerate(t *testing.T) {
	ctx := context.Background()
	b, adapter := newBridge(t, session.Config{Prefix: "r:"})
	require.NoError(t, b.Set(ctx, "old", domain.Record{"user": "jdoe"}))

	newSID, err := b.Regenerate(ctx, "old")
	require.NoError(t, err)
	assert.NotEmpty(t, newSID)
	assert.NotEqual(t, "old", newSID)

	_, ok := adapter.Stored("r:old")
	assert.False(t, ok, "old session should be destroyed")
}

func TestBridge_Regenerate_ForwardsError(t *testing.T) {
	adapter := NewFakeAdapter()
	adapter.DeleteErr = errBackend
	b, _ := newBridge(t, session.Config{Adapter: adapter})

	newSID, err := b.Regenerate(context.Background(), "old")
	assert.Empty(t, newSID)
	assert.True(t, err == errBackend)
}

func TestBridge_LoadOrNew(t *testing.T) {
	ctx := context.Background()
	b, adapter := newBridge(t, session.Config{})

	rec, found, err := b.LoadOrNew(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, domain.Record{}, rec)
	assert.Empty(t, adapter.Calls()[1:], "a new record is not persisted")

	require.NoError(t, b.Set(ctx, "sid", domain.Record{"n": 1}))
	rec, found, err = b.LoadOrNew(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, rec["n"])
}

func TestBase_NewIDDefaultsToUUID(t *testing.T) {
	base := session.NewBase()
	a, b := base.NewID(), base.NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
