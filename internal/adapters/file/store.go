package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
)

const unnamed = "_default"

// Store implements ports.Adapter using the local filesystem.
// Each record is a JSON file at <BasePath>/<db>/<type>/<escaped key>.json.
type Store struct {
	BasePath string

	mu  sync.RWMutex
	db  string
	typ string
}

var (
	_ ports.Adapter   = (*Store)(nil)
	_ ports.Lister    = (*Store)(nil)
	_ ports.Namespace = (*Store)(nil)
)

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".glint/sessions".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".glint", "sessions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) dir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, typ := s.db, s.typ
	if db == "" {
		db = unnamed
	}
	if typ == "" {
		typ = unnamed
	}
	return filepath.Join(s.BasePath, url.PathEscape(db), url.PathEscape(typ))
}

// Keys may contain separators, so they are path-escaped into a single file name.
func fileName(key string) string {
	return url.PathEscape(key) + ".json"
}

// Save persists the record to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, key string, rec domain.Record) error {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// Same directory as the destination, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := filepath.Join(dir, fileName(key))

	// os.Rename does not replace an existing file on Windows.
	if runtime.GOOS == "windows" {
		if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing session file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to session file: %w", err)
	}
	return nil
}

// Load retrieves the record from its JSON file.
func (s *Store) Load(ctx context.Context, key string) (domain.Record, error) {
	data, err := os.ReadFile(filepath.Join(s.dir(), fileName(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return rec, nil
}

// Delete removes the record file.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir(), fileName(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns all keys stored in the current namespace.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue // not written by this store
		}
		keys = append(keys, key)
	}
	return keys, nil
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
