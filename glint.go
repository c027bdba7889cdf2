package glint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/glint/internal/adapters/file"
	"github.com/aretw0/glint/internal/config"
	"github.com/aretw0/glint/internal/logging"
	"github.com/aretw0/glint/pkg/adapters/leveldb"
	"github.com/aretw0/glint/pkg/adapters/memory"
	"github.com/aretw0/glint/pkg/adapters/redis"
	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/persistence/middleware"
	"github.com/aretw0/glint/pkg/ports"
	"github.com/aretw0/glint/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// pingTimeout bounds the connectivity check done when opening a Redis adapter.
const pingTimeout = 2 * time.Second

// Service is a configured session store: adapter, middleware chain and bridge.
// The embedded Bridge provides Get, Set, Destroy, Regenerate, LoadOrNew and List.
type Service struct {
	*session.Bridge

	adapter  ports.Adapter
	closer   io.Closer
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	hooks    domain.LifecycleHooks

	registerer prometheus.Registerer
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithAdapter injects a custom adapter, bypassing the adapter section of the configuration.
// The Service does not close injected adapters.
func WithAdapter(a ports.Adapter) Option {
	return func(s *Service) {
		s.adapter = a
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRegisterer registers the adapter metrics on reg instead of a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = reg
	}
}

// WithLifecycleHooks registers observability hooks on the bridge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Service) {
		s.hooks = hooks
	}
}

// Open builds a Service from cfg.
func Open(cfg config.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = logging.NewNop()
	}

	if svc.registerer == nil {
		reg := prometheus.NewRegistry()
		svc.registerer = reg
		svc.gatherer = reg
	} else if g, ok := svc.registerer.(prometheus.Gatherer); ok {
		svc.gatherer = g
	}

	if svc.adapter == nil {
		adapter, closer, err := newAdapter(cfg.Adapter, svc.logger)
		if err != nil {
			return nil, err
		}
		svc.adapter = adapter
		svc.closer = closer
	}

	if ns := svc.adapter.Namespace(); ns != nil {
		if cfg.Adapter.Database != "" {
			ns.SetDatabase(cfg.Adapter.Database)
		}
		if cfg.Adapter.Type != "" {
			ns.SetType(cfg.Adapter.Type)
		}
	}

	chained, err := svc.chain(cfg)
	if err != nil {
		svc.Close()
		return nil, err
	}

	bridge, err := session.New(session.Config{
		Adapter:      chained,
		Prefix:       cfg.Prefix,
		TTLAttribute: cfg.TTLAttribute,
		DisableTTL:   cfg.DisableTTL,
		TTL:          cfg.TTL,
	}, session.WithLogger(svc.logger), session.WithLifecycleHooks(svc.hooks))
	if err != nil {
		svc.Close()
		return nil, err
	}
	svc.Bridge = bridge

	svc.logger.Debug("session store ready", "adapter", cfg.Adapter.Kind, "prefix", cfg.Prefix)
	return svc, nil
}

// chain wraps the adapter: metrics outermost, then PII masking, then encryption.
func (s *Service) chain(cfg config.Config) (ports.Adapter, error) {
	metrics, err := middleware.NewMetrics(s.registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	s.metrics = metrics

	mws := []middleware.Middleware{metrics.Middleware()}
	if len(cfg.PII.Patterns) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(cfg.PII.Patterns))
	}

	active, fallback, err := cfg.Encryption.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}

	return middleware.Chain(s.adapter, mws...), nil
}

func newAdapter(cfg config.AdapterConfig, logger *slog.Logger) (ports.Adapter, io.Closer, error) {
	switch cfg.Kind {
	case config.KindMemory:
		return memory.NewStore(memory.WithSize(cfg.Memory.Size)), nil, nil

	case config.KindRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithTTL(cfg.Redis.TTL))
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("connected to redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return store, store, nil

	case config.KindLevelDB:
		store := leveldb.New(cfg.LevelDB.Path)
		return store, store, nil

	case config.KindFile:
		return file.New(cfg.File.Path), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown adapter kind %q", cfg.Kind)
}

// Adapter returns the unwrapped storage adapter.
func (s *Service) Adapter() ports.Adapter {
	return s.adapter
}

// Metrics returns the collectors fed by the metrics middleware.
func (s *Service) Metrics() *middleware.Metrics {
	return s.metrics
}

// Gatherer returns the registry holding the adapter metrics, or nil when the
// configured registerer cannot be gathered.
func (s *Service) Gatherer() prometheus.Gatherer {
	return s.gatherer
}

// Close releases the adapter opened by Open.
func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	if err != nil {
		return fmt.Errorf("failed to close adapter: %w", err)
	}
	return nil
}
