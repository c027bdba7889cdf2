package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the Prometheus collectors fed by the metrics middleware.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// Collectors already registered by an earlier call are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glint",
		Subsystem: "adapter",
		Name:      "operations_total",
		Help:      "Adapter operations by operation and result.",
	}, []string{"op", "result"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "glint",
		Subsystem: "adapter",
		Name:      "operation_duration_seconds",
		Help:      "Latency of adapter operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	var err error
	if ops, err = register(reg, ops); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &Metrics{Operations: ops, Duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Middleware returns the decorator recording every adapter call on m.
func (m *Metrics) Middleware() Middleware {
	return func(next ports.Adapter) ports.Adapter {
		return &metricsMiddleware{passthrough: passthrough{next: next}, metrics: m}
	}
}

type metricsMiddleware struct {
	passthrough
	metrics *Metrics
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := ResultOK
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		result = ResultNotFound
	case err != nil:
		result = ResultError
	}
	m.metrics.Operations.WithLabelValues(op, result).Inc()
	m.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Load(ctx context.Context, key string) (domain.Record, error) {
	start := time.Now()
	rec, err := m.next.Load(ctx, key)
	if err == nil && rec == nil {
		m.observe("load", start, domain.ErrSessionNotFound)
	} else {
		m.observe("load", start, err)
	}
	return rec, err
}

func (m *metricsMiddleware) Save(ctx context.Context, key string, rec domain.Record) error {
	start := time.Now()
	err := m.next.Save(ctx, key, rec)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := m.next.Delete(ctx, key)
	m.observe("delete", start, err)
	return err
}
