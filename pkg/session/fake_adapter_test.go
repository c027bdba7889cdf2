package session_test

import (
	"context"
	"sync"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
)

// call records one adapter invocation.
type call struct {
	Op  string
	Key string
}

// FakeAdapter keeps records by reference and records every call.
type FakeAdapter struct {
	mu    sync.Mutex
	data  map[string]domain.Record
	calls []call

	LoadErr   error
	SaveErr   error
	DeleteErr error

	// NotFoundAsError reports absent keys with domain.ErrSessionNotFound instead of (nil, nil).
	NotFoundAsError bool

	ns *fakeNamespace
}

type fakeNamespace struct {
	db  string
	typ string
}

func (n *fakeNamespace) Database() string        { return n.db }
func (n *fakeNamespace) SetDatabase(name string) { n.db = name }
func (n *fakeNamespace) Type() string            { return n.typ }
func (n *fakeNamespace) SetType(name string)     { n.typ = name }

func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{data: make(map[string]domain.Record)}
}

// WithNamespace enables the naming capability with the given initial values.
func (f *FakeAdapter) WithNamespace(db, typ string) *FakeAdapter {
	f.ns = &fakeNamespace{db: db, typ: typ}
	return f
}

func (f *FakeAdapter) Load(ctx context.Context, key string) (domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{"load", key})
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	rec, ok := f.data[key]
	if !ok && f.NotFoundAsError {
		return nil, domain.ErrSessionNotFound
	}
	return rec, nil
}

func (f *FakeAdapter) Save(ctx context.Context, key string, rec domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{"save", key})
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.data[key] = rec
	return nil
}

func (f *FakeAdapter) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{"delete", key})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.data, key)
	return nil
}

func (f *FakeAdapter) Namespace() ports.Namespace {
	if f.ns == nil {
		return nil
	}
	return f.ns
}

func (f *FakeAdapter) Stored(key string) (domain.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.data[key]
	return rec, ok
}

func (f *FakeAdapter) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

// ListingAdapter adds key enumeration to FakeAdapter.
type ListingAdapter struct {
	*FakeAdapter
}

func (l ListingAdapter) List(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.data))
	for k := range l.data {
		keys = append(keys, k)
	}
	return keys, nil
}
