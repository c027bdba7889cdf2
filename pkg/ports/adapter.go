package ports

import (
	"context"

	"github.com/aretw0/glint/pkg/domain"
)

// Adapter defines the raw keyed storage a session bridge delegates to.
// Keys arrive fully formed (prefix already applied) and must round-trip exactly.
type Adapter interface {
	// Load retrieves the record stored under key.
	// An absent key is reported either as (nil, nil) or as domain.ErrSessionNotFound.
	Load(ctx context.Context, key string) (domain.Record, error)

	// Save persists rec under key, replacing any previous record.
	Save(ctx context.Context, key string, rec domain.Record) error

	// Delete removes the record under key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Namespace exposes the adapter's database/type naming, or nil when it has none.
	Namespace() Namespace
}

// Namespace is the optional naming capability of an adapter.
// The database name and record type partition the backing store; an empty value means unset.
type Namespace interface {
	Database() string
	SetDatabase(name string)
	Type() string
	SetType(name string)
}

// Lister is implemented by adapters that can enumerate their keys.
type Lister interface {
	// List returns every key currently held in the adapter's namespace.
	List(ctx context.Context) ([]string, error)
}
