package session

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/aretw0/glint/internal/logging"
	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
)

// Bridge implements ports.Store on top of a ports.Adapter.
// Adapter errors are returned unchanged; the bridge never retries or wraps them.
type Bridge struct {
	adapter      ports.Adapter
	prefix       string
	ttlAttribute string
	disableTTL   bool
	ttl          int

	base   *Base
	logger *slog.Logger
}

var _ ports.Store = (*Bridge)(nil)

// New creates a Bridge from cfg.
// It fails with domain.ErrNoAdapter when cfg has no adapter, and defaults the
// adapter's database name and record type when the adapter supports naming.
func New(cfg Config, opts ...Option) (*Bridge, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	b := &Bridge{
		adapter:      cfg.Adapter,
		prefix:       cfg.Prefix,
		ttlAttribute: cfg.TTLAttribute,
		disableTTL:   cfg.DisableTTL,
		ttl:          cfg.TTL,
		base:         NewBase(),
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if ns := b.adapter.Namespace(); ns != nil {
		if ns.Database() == "" {
			b.logger.Debug("db not set on the adapter, setting to default", "db", domain.DefaultDatabase)
			ns.SetDatabase(domain.DefaultDatabase)
		}
		if ns.Type() == "" {
			b.logger.Debug("type not set on the adapter, setting to default", "type", domain.DefaultType)
			ns.SetType(domain.DefaultType)
		}
	}

	return b, nil
}

// Key returns the storage key for sid.
func (b *Bridge) Key(sid string) string {
	return b.prefix + sid
}

// Prefix returns the configured key prefix.
func (b *Bridge) Prefix() string {
	return b.prefix
}

// TTLAttribute returns the record field the TTL is written to.
func (b *Bridge) TTLAttribute() string {
	return b.ttlAttribute
}

// Adapter returns the underlying adapter.
func (b *Bridge) Adapter() ports.Adapter {
	return b.adapter
}

// ComputeTTL returns the TTL in seconds that Set would write for rec:
// the configured override, else the cookie max-age, else one day.
func (b *Bridge) ComputeTTL(rec domain.Record) int64 {
	if b.ttl > 0 {
		return int64(b.ttl)
	}
	if maxAge, ok := rec.MaxAge(); ok {
		return secondsFloor(maxAge)
	}
	return domain.OneDay
}

// secondsFloor converts milliseconds to whole seconds, saturating at the int64 range.
func secondsFloor(ms float64) int64 {
	s := math.Floor(ms / 1000)
	switch {
	case s >= math.MaxInt64:
		return math.MaxInt64
	case s <= math.MinInt64:
		return math.MinInt64
	}
	return int64(s)
}

// Get loads the session for sid. It returns (nil, nil) when there is no session.
func (b *Bridge) Get(ctx context.Context, sid string) (domain.Record, error) {
	key := b.Key(sid)
	b.logger.Debug("load", "session_id", sid)

	rec, err := b.adapter.Load(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	found := err == nil && rec != nil
	b.base.Emit(ctx, &domain.StoreEvent{
		Type:       domain.EventLoad,
		SessionID:  sid,
		StorageKey: key,
		Found:      found,
	})
	if !found {
		return nil, nil
	}

	b.logger.Debug("loaded", "session_id", sid, "fields", len(rec))
	return rec, nil
}

// Set persists rec for sid. Unless TTL injection is disabled, rec is modified in place
// to carry the TTL under the configured attribute before it is saved.
func (b *Bridge) Set(ctx context.Context, sid string, rec domain.Record) error {
	key := b.Key(sid)
	if rec == nil {
		rec = domain.Record{}
	}

	if !b.disableTTL {
		ttl := b.ComputeTTL(rec)
		rec[b.ttlAttribute] = ttl
		b.logger.Debug("store", "session_id", sid, "ttl", ttl)
	} else {
		b.logger.Debug("store", "session_id", sid)
	}

	if err := b.adapter.Save(ctx, key, rec); err != nil {
		return err
	}

	b.logger.Debug("stored", "session_id", sid)
	b.base.Emit(ctx, &domain.StoreEvent{
		Type:       domain.EventSave,
		SessionID:  sid,
		StorageKey: key,
	})
	return nil
}

// Destroy removes the session for sid. It does not check whether the session exists.
func (b *Bridge) Destroy(ctx context.Context, sid string) error {
	key := b.Key(sid)
	b.logger.Debug("destroy", "session_id", sid, "key", key)

	if err := b.adapter.Delete(ctx, key); err != nil {
		return err
	}

	b.base.Emit(ctx, &domain.StoreEvent{
		Type:       domain.EventDestroy,
		SessionID:  sid,
		StorageKey: key,
	})
	return nil
}

// Regenerate destroys sid and returns a freshly generated session id.
func (b *Bridge) Regenerate(ctx context.Context, sid string) (string, error) {
	newSID, err := b.base.Regenerate(ctx, b, sid)
	if err != nil {
		return "", err
	}

	b.base.Emit(ctx, &domain.StoreEvent{
		Type:         domain.EventRegenerate,
		SessionID:    sid,
		StorageKey:   b.Key(sid),
		NewSessionID: newSID,
	})
	return newSID, nil
}

// LoadOrNew loads sid, or returns an empty unsaved record and false when there is none.
func (b *Bridge) LoadOrNew(ctx context.Context, sid string) (domain.Record, bool, error) {
	return b.base.LoadOrNew(ctx, b, sid)
}

// List returns the ids of the sessions stored under the configured prefix, sorted.
// It returns domain.ErrListUnsupported when the adapter cannot enumerate keys.
func (b *Bridge) List(ctx context.Context) ([]string, error) {
	lister, ok := b.adapter.(ports.Lister)
	if !ok {
		return nil, domain.ErrListUnsupported
	}

	keys, err := lister.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, b.prefix) {
			ids = append(ids, strings.TrimPrefix(key, b.prefix))
		}
	}
	sort.Strings(ids)
	return ids, nil
}
