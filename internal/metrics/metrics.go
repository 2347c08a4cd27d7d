// Package metrics provides interfaces and implementations for collecting
// operational metrics from the staking engine.
package metrics

import (
	"context"
	"log/slog"
	"sync"
)

// Metric names emitted by the engine.
const (
	CounterPoolsCreated   = "pools_created_total"
	CounterStakeOps       = "stake_ops_total"
	CounterUnstakeOps     = "unstake_ops_total"
	CounterClaimOps       = "claim_ops_total"
	CounterCompoundOps    = "compound_ops_total"
	CounterRewardPaid     = "reward_paid_total"
	CounterFeesCollected  = "fees_collected_total"
	GaugePoolTotalStaked  = "pool_total_staked"
	GaugePoolRewardBudget = "pool_reward_budget"
)

// Metrics defines the interface for collecting engine metrics.
// Implementations can send metrics to various backends.
type Metrics interface {
	// Initialize prepares the metrics system for data collection.
	Initialize(ctx context.Context) error

	// Flush sends any buffered metrics data.
	Flush(ctx context.Context) error

	// Shutdown gracefully shuts down the metrics system.
	Shutdown(ctx context.Context) error

	// UpdateGauge sets a gauge metric to the specified value.
	UpdateGauge(ctx context.Context, name string, value float64) error

	// IncrementCounter increments a counter metric by the specified value.
	IncrementCounter(ctx context.Context, name string, value uint64) error
}

// Collection manages multiple Metrics implementations and delegates calls to
// all of them.
type Collection struct {
	metrics []Metrics
	mu      sync.RWMutex
}

// NewCollection creates a new Collection with the given implementations.
func NewCollection(metrics ...Metrics) *Collection {
	return &Collection{metrics: metrics}
}

// Add adds a new Metrics implementation to the collection.
func (c *Collection) Add(m Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = append(c.metrics, m)
}

// Initialize initializes all metrics in the collection.
func (c *Collection) Initialize(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.metrics {
		if err := m.Initialize(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes all metrics in the collection.
func (c *Collection) Flush(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.metrics {
		if err := m.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown shuts down all metrics in the collection.
func (c *Collection) Shutdown(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.metrics {
		if err := m.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// UpdateGauge updates a gauge metric across all implementations.
func (c *Collection) UpdateGauge(ctx context.Context, name string, value float64) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.metrics {
		if err := m.UpdateGauge(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// IncrementCounter increments a counter across all implementations.
func (c *Collection) IncrementCounter(ctx context.Context, name string, value uint64) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.metrics {
		if err := m.IncrementCounter(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// NoopMetrics is a Metrics implementation that does nothing.
type NoopMetrics struct{}

// NewNoopMetrics creates a new NoopMetrics.
func NewNoopMetrics() *NoopMetrics { return &NoopMetrics{} }

func (n *NoopMetrics) Initialize(ctx context.Context) error { return nil }
func (n *NoopMetrics) Flush(ctx context.Context) error      { return nil }
func (n *NoopMetrics) Shutdown(ctx context.Context) error   { return nil }
func (n *NoopMetrics) UpdateGauge(ctx context.Context, name string, value float64) error {
	return nil
}
func (n *NoopMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	return nil
}

// LogMetrics is a Metrics implementation that accumulates values and logs
// them on Flush using slog.
type LogMetrics struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	gauges   map[string]float64
	counters map[string]uint64
}

// NewLogMetrics creates a new LogMetrics with the given logger.
// If logger is nil, the default logger is used.
func NewLogMetrics(logger *slog.Logger) *LogMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMetrics{
		logger:   logger,
		gauges:   make(map[string]float64),
		counters: make(map[string]uint64),
	}
}

// Initialize implements Metrics.
func (l *LogMetrics) Initialize(ctx context.Context) error {
	l.logger.Info("metrics initialized")
	return nil
}

// Flush logs all current metric values.
func (l *LogMetrics) Flush(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info("metrics flush",
		"gauges", l.gauges,
		"counters", l.counters,
	)
	return nil
}

// Shutdown implements Metrics.
func (l *LogMetrics) Shutdown(ctx context.Context) error {
	return l.Flush(ctx)
}

// UpdateGauge implements Metrics.
func (l *LogMetrics) UpdateGauge(ctx context.Context, name string, value float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gauges[name] = value
	return nil
}

// IncrementCounter implements Metrics.
func (l *LogMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counters[name] += value
	return nil
}

// Counter returns the current value of a counter. Intended for tests.
func (l *LogMetrics) Counter(name string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counters[name]
}
