package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// unnamedDatabase is the directory used while no database name is set.
const unnamedDatabase = "_default"

// Store implements ports.Adapter on LevelDB.
// Each database name is its own LevelDB directory under BasePath, opened on first use;
// within it, records are keyed "<type>:<key>".
type Store struct {
	BasePath string

	mu      sync.Mutex
	handles map[string]*leveldb.DB
	db      string
	typ     string
}

var (
	_ ports.Adapter   = (*Store)(nil)
	_ ports.Lister    = (*Store)(nil)
	_ ports.Namespace = (*Store)(nil)
)

// New creates a Store rooted at basePath. Nothing is opened until the first operation.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".glint", "leveldb")
	}
	return &Store{
		BasePath: basePath,
		handles:  make(map[string]*leveldb.DB),
	}
}

// handle returns the open database for the current name and the key prefix for the current type.
func (s *Store) handle() (*leveldb.DB, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.db
	if name == "" {
		name = unnamedDatabase
	}
	prefix := s.typ + ":"

	if h, ok := s.handles[name]; ok {
		return h, prefix, nil
	}

	h, err := leveldb.OpenFile(filepath.Join(s.BasePath, name), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open leveldb %q: %w", name, err)
	}
	s.handles[name] = h
	return h, prefix, nil
}

// Save persists the record.
func (s *Store) Save(ctx context.Context, key string, rec domain.Record) error {
	h, prefix, err := s.handle()
	if err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := h.Put([]byte(prefix+key), data, nil); err != nil {
		return fmt.Errorf("failed to write to leveldb: %w", err)
	}
	return nil
}

// Load retrieves the record.
func (s *Store) Load(ctx context.Context, key string) (domain.Record, error) {
	h, prefix, err := s.handle()
	if err != nil {
		return nil, err
	}

	data, err := h.Get([]byte(prefix+key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read from leveldb: %w", err)
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return rec, nil
}

// Delete removes the record. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	h, prefix, err := s.handle()
	if err != nil {
		return err
	}

	if err := h.Delete([]byte(prefix+key), nil); err != nil {
		return fmt.Errorf("failed to delete from leveldb: %w", err)
	}
	return nil
}

// List returns every key of the current type.
func (s *Store) List(ctx context.Context) ([]string, error) {
	h, prefix, err := s.handle()
	if err != nil {
		return nil, err
	}

	iter := h.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	keys := []string{}
	for iter.Next() {
		keys = append(keys, string(iter.Key()[len(prefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return keys, nil
}

// Close closes every opened database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for name, h := range s.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close leveldb %q: %w", name, err))
		}
		delete(s.handles, name)
	}
	return errors.Join(errs...)
}

func (s *Store) Namespace() ports.Namespace { return s }

func (s *Store) Database() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

func (s *Store) SetDatabase(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db = name
}

func (s *Store) Type() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typ
}

func (s *Store) SetType(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typ = name
}
