// Package metrics exposes Prometheus collectors for the notification queue,
// the navigation event bridge and action dispatch.
//
// A Collector satisfies the small recorder interfaces declared by the notify,
// bridge and actions packages, so those packages stay free of Prometheus:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.WithRegistry(reg))
//	n := notify.New(cfg, nav, notify.WithRecorder(m))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "flashkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are added to all metrics.
	ConstLabels prometheus.Labels

	// Registry receives the collectors (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithRegistry sets the registerer. Use a fresh prometheus.NewRegistry() per
// Collector in tests; registering twice on the same registry panics.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		if registry != nil {
			c.Registry = registry
		}
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "flashkit",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds all flashkit metrics.
type Collector struct {
	queued     *prometheus.CounterVec
	removed    prometheus.Counter
	queueLen   prometheus.Gauge
	events     *prometheus.CounterVec
	dispatched *prometheus.CounterVec
}

// New registers the collectors and returns them.
func New(opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Collector{
		queued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "notifications_queued_total",
			Help:        "Total number of notifications appended to the queue",
			ConstLabels: cfg.ConstLabels,
		}, []string{"key"}),

		removed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "notifications_removed_total",
			Help:        "Total number of notifications removed from the queue",
			ConstLabels: cfg.ConstLabels,
		}),

		queueLen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "queue_length",
			Help:        "Current number of queued notifications",
			ConstLabels: cfg.ConstLabels,
		}),

		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flash_events_total",
			Help:        "Navigation events seen by the bridge, by outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"event", "result"}),

		dispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "actions_dispatched_total",
			Help:        "Notification actions dispatched, by kind and outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"kind", "result"}),
	}
}

// NotificationQueued counts one queued notification under its flash key.
// Notifications queued without a key are labelled "none".
func (c *Collector) NotificationQueued(key string) {
	if key == "" {
		key = "none"
	}
	c.queued.WithLabelValues(key).Inc()
}

func (c *Collector) NotificationRemoved() {
	c.removed.Inc()
}

func (c *Collector) QueueLength(n int) {
	c.queueLen.Set(float64(n))
}

// FlashEvent counts a bridge event with its outcome.
func (c *Collector) FlashEvent(event, result string) {
	c.events.WithLabelValues(event, result).Inc()
}

// ActionDispatched counts a dispatch with its result: ok, failed or unresolved.
func (c *Collector) ActionDispatched(kind, result string) {
	c.dispatched.WithLabelValues(kind, result).Inc()
}
