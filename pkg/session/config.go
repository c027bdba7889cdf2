package session

import (
	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
)

// Config holds the options a Bridge is constructed from.
// It is copied at construction and never mutated afterwards.
type Config struct {
	// Adapter is the storage the bridge delegates to. Required.
	Adapter ports.Adapter

	// Prefix is prepended to every session id to form the storage key.
	Prefix string

	// TTLAttribute is the record field receiving the TTL. Defaults to "_ttl".
	TTLAttribute string

	// DisableTTL persists records exactly as given.
	DisableTTL bool

	// TTL, in seconds, overrides the value derived from the cookie max-age. Zero means unset.
	TTL int
}

func (c Config) normalize() (Config, error) {
	if c.Adapter == nil {
		return c, domain.ErrNoAdapter
	}
	if c.TTL < 0 {
		return c, domain.ErrInvalidTTL
	}
	if c.TTLAttribute == "" {
		c.TTLAttribute = domain.DefaultTTLAttribute
	}
	return c, nil
}
