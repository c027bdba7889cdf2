package middleware_test

import (
	"context"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
)

// MockStore is a simple map-based adapter for testing middleware.
type MockStore struct {
	data map[string]domain.Record
	ns   *mockNamespace
}

type mockNamespace struct{ db, typ string }

func (n *mockNamespace) Database() string        { return n.db }
func (n *mockNamespace) SetDatabase(name string) { n.db = name }
func (n *mockNamespace) Type() string            { return n.typ }
func (n *mockNamespace) SetType(name string)     { n.typ = name }

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.Record),
		ns:   &mockNamespace{},
	}
}

func (s *MockStore) Save(ctx context.Context, key string, rec domain.Record) error {
	s.data[key] = rec
	return nil
}

func (s *MockStore) Load(ctx context.Context, key string) (domain.Record, error) {
	rec, ok := s.data[key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return rec, nil
}

func (s *MockStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *MockStore) Namespace() ports.Namespace { return s.ns }

var (
	_ ports.Adapter = (*MockStore)(nil)
	_ ports.Lister  = (*MockStore)(nil)
)

// bareAdapter hides MockStore's List.
type bareAdapter struct {
	inner *MockStore
}

func (b bareAdapter) Load(ctx context.Context, key string) (domain.Record, error) {
	return b.inner.Load(ctx, key)
}
func (b bareAdapter) Save(ctx context.Context, key string, rec domain.Record) error {
	return b.inner.Save(ctx, key, rec)
}
func (b bareAdapter) Delete(ctx context.Context, key string) error { return b.inner.Delete(ctx, key) }
func (b bareAdapter) Namespace() ports.Namespace                 { return nil }
