package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// farFuture is the index score of records without expiration (2100-01-01).
const farFuture = 4102444800

// Store implements ports.Adapter using Redis.
// Records live under "<db>:<type>:<key>"; a sorted set under "<db>:<type>#index"
// tracks keys for listing.
type Store struct {
	client backend.UniversalClient
	ttl    time.Duration

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

// WithTTL sets a fixed expiration for every saved key.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithDatabase sets the database name (first key segment).
func WithDatabase(name string) Option {
	return func(s *Store) {
		s.db = name
	}
}

// WithType sets the record type (second key segment).
func WithType(name string) Option {
	return func(s *Store) {
		s.typ = name
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Store {
	store := &Store{
		client: client,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) base() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db + ":" + s.typ
}

func (s *Store) key(key string) string {
	return s.base() + ":" + key
}

func (s *Store) indexKey() string {
	return s.base() + "#index"
}

// Save persists the record to Redis.
func (s *Store) Save(ctx context.Context, key string, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.Pipeline()

	// 0 means no expiration.
	pipe.Set(ctx, s.key(key), data, s.ttl)

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: key,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the record from Redis.
func (s *Store) Load(ctx context.Context, key string) (domain.Record, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var rec domain.Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return rec, nil
}

// Delete removes the record and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns the keys in the index, pruning entries whose expiration has passed.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return keys, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
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
