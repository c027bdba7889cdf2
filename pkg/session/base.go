package session

import (
	"context"
	"time"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
	"github.com/google/uuid"
)

// Base carries the behavior every store gets on top of Get/Set/Destroy:
// event emission, id generation, regeneration and load-or-create.
// It works against any ports.Store, so other store implementations can embed it too.
type Base struct {
	hooks domain.LifecycleHooks
	newID func() string
	now   func() time.Time
}

// NewBase creates a Base with uuid ids and no hooks.
func NewBase() *Base {
	return &Base{
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// NewID returns a fresh session id.
func (b *Base) NewID() string {
	return b.newID()
}

// Emit dispatches ev to the hook registered for its type.
func (b *Base) Emit(ctx context.Context, ev *domain.StoreEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = b.now()
	}

	var hook func(context.Context, *domain.StoreEvent)
	switch ev.Type {
	case domain.EventLoad:
		hook = b.hooks.OnLoad
	case domain.EventSave:
		hook = b.hooks.OnSave
	case domain.EventDestroy:
		hook = b.hooks.OnDestroy
	case domain.EventRegenerate:
		hook = b.hooks.OnRegenerate
	}
	if hook != nil {
		hook(ctx, ev)
	}
}

// Regenerate destroys the session sid in store and returns a new id for the caller to use.
func (b *Base) Regenerate(ctx context.Context, store ports.Store, sid string) (string, error) {
	if err := store.Destroy(ctx, sid); err != nil {
		return "", err
	}
	return b.NewID(), nil
}

// LoadOrNew loads sid from store, or returns an empty unsaved record when there is none.
func (b *Base) LoadOrNew(ctx context.Context, store ports.Store, sid string) (domain.Record, bool, error) {
	rec, err := store.Get(ctx, sid)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return domain.Record{}, false, nil
	}
	return rec, true, nil
}
