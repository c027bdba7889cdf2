package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of records kept before the least recently used one is evicted.
const DefaultSize = 10000

const sep = "\x00"

// Store implements ports.Adapter in memory, bounded by an LRU.
// Records are kept JSON-encoded so callers never share maps with the store.
// Safe for concurrent use.
type Store struct {
	cache *lru.Cache[string, []byte]
	size  int

	mu  sync.RWMutex
	db  string
	typ string
}

var (
	_ ports.Adapter   = (*Store)(nil)
	_ ports.Lister    = (*Store)(nil)
	_ ports.Namespace = (*Store)(nil)
)

type Option func(*Store)

// WithSize bounds the number of records held.
func WithSize(size int) Option {
	return func(s *Store) {
		s.size = size
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{size: DefaultSize}
	for _, opt := range opts {
		opt(s)
	}
	if s.size <= 0 {
		s.size = DefaultSize
	}

	// size is positive, so New cannot fail.
	s.cache, _ = lru.New[string, []byte](s.size)
	return s
}

func (s *Store) namespace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db + sep + s.typ + sep
}

func (s *Store) key(key string) string {
	return s.namespace() + key
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, key string, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	s.cache.Add(s.key(key), data)
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, key string) (domain.Record, error) {
	data, ok := s.cache.Get(s.key(key))
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return rec, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.cache.Remove(s.key(key))
	return nil
}

// List returns the keys held in the current namespace, least recently used first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ns := s.namespace()
	keys := make([]string, 0, s.cache.Len())
	for _, k := range s.cache.Keys() {
		if strings.HasPrefix(k, ns) {
			keys = append(keys, strings.TrimPrefix(k, ns))
		}
	}
	return keys, nil
}

// Len returns the number of records held across all namespaces.
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) Namespace() ports.Namespace { return s }

func (s *Store) Database() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *Store) SetDatabase(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db = name
}

func (s *Store) Type() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typ
}

func (s *Store) SetType(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typ = name
}
