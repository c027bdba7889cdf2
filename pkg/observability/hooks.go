package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/glint/pkg/domain"
)

// LoggingHooks returns hooks that log every store event at Info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(ctx context.Context, e *domain.StoreEvent) {
			logger.InfoContext(ctx, "session_load",
				"session_id", e.SessionID,
				"key", e.StorageKey,
				"found", e.Found,
			)
		},
		OnSave: func(ctx context.Context, e *domain.StoreEvent) {
			logger.InfoContext(ctx, "session_save", "session_id", e.SessionID, "key", e.StorageKey)
		},
		OnDestroy: func(ctx context.Context, e *domain.StoreEvent) {
			logger.InfoContext(ctx, "session_destroy", "session_id", e.SessionID, "key", e.StorageKey)
		},
		OnRegenerate: func(ctx context.Context, e *domain.StoreEvent) {
			logger.InfoContext(ctx, "session_regenerate",
				"session_id", e.SessionID,
				"new_session_id", e.NewSessionID,
			)
		},
	}
}

// Combine returns hooks that call each of the given hook sets in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	pick := func(get func(domain.LifecycleHooks) func(context.Context, *domain.StoreEvent)) func(context.Context, *domain.StoreEvent) {
		var fns []func(context.Context, *domain.StoreEvent)
		for _, set := range sets {
			if fn := get(set); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.StoreEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnLoad:       pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StoreEvent) { return h.OnLoad }),
		OnSave:       pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StoreEvent) { return h.OnSave }),
		OnDestroy:    pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StoreEvent) { return h.OnDestroy }),
		OnRegenerate: pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StoreEvent) { return h.OnRegenerate }),
	}
}
