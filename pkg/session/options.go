package session

import (
	"log/slog"

	"github.com/aretw0/glint/pkg/domain"
)

// Option configures the Bridge.
type Option func(*Bridge)

// WithLogger configures a logger for the Bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bridge) {
		b.base.hooks = hooks
	}
}

// WithIDGenerator replaces the session id generator used by Regenerate.
func WithIDGenerator(fn func() string) Option {
	return func(b *Bridge) {
		if fn != nil {
			b.base.newID = fn
		}
	}
}
