package domain

import "errors"

// ErrSessionNotFound is returned by adapters when a key cannot be found in the backing store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoAdapter is returned when a bridge is constructed without a storage adapter.
var ErrNoAdapter = errors.New("glint: adapter has not been provided")

// ErrInvalidTTL is returned when a negative TTL override is configured.
var ErrInvalidTTL = errors.New("glint: ttl must not be negative")

// ErrListUnsupported is returned when listing sessions on an adapter that cannot enumerate keys.
var ErrListUnsupported = errors.New("adapter does not support listing")
