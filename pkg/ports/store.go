package ports

import (
	"context"

	"github.com/aretw0/glint/pkg/domain"
)

// Store is the session store contract consumed by web frameworks.
type Store interface {
	// Get returns the record for sid, or (nil, nil) when there is no session.
	Get(ctx context.Context, sid string) (domain.Record, error)

	// Set persists rec for sid.
	Set(ctx context.Context, sid string, rec domain.Record) error

	// Destroy removes the session for sid.
	Destroy(ctx context.Context, sid string) error
}
