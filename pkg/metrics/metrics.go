package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/refkit/pkg/ref"
)

// Config configures the Prometheus merged ref observer.
type Config struct {
	// Namespace is the metrics namespace (default: "refkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// targetBuckets are the histogram buckets for targets reached per Set.
var targetBuckets = []float64{1, 2, 3, 4, 6, 8, 16}

func defaultConfig() Config {
	return Config{
		Namespace: "refkit",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Observer is a ref.Observer that records Prometheus metrics.
//
// Metrics collected:
//   - refkit_merged_refs_built_total: merged refs built by caches
//   - refkit_merged_refs_reused_total: cache hits returning a previous merged ref
//   - refkit_merged_ref_sets_total: values set on merged refs
//   - refkit_merged_ref_targets: histogram of targets reached per set
type Observer struct {
	built   prometheus.Counter
	reused  prometheus.Counter
	sets    prometheus.Counter
	targets prometheus.Histogram
}

var _ ref.Observer = (*Observer)(nil)

// New registers the merged ref metrics and returns an Observer recording them.
//
// Example:
//
//	obs := metrics.New(metrics.WithNamespace("myapp"))
//	owner := hooks.NewOwner(nil, hooks.WithObserver(obs))
func New(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Observer{
		built: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "merged_refs_built_total",
			Help:        "Total number of merged refs built",
			ConstLabels: config.ConstLabels,
		}),

		reused: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "merged_refs_reused_total",
			Help:        "Total number of renders that reused an existing merged ref",
			ConstLabels: config.ConstLabels,
		}),

		sets: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "merged_ref_sets_total",
			Help:        "Total number of values set on merged refs",
			ConstLabels: config.ConstLabels,
		}),

		targets: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "merged_ref_targets",
			Help:        "Number of targets reached by a single merged ref set",
			ConstLabels: config.ConstLabels,
			Buckets:     targetBuckets,
		}),
	}
}

// MergedRefBuilt implements ref.Observer.
func (o *Observer) MergedRefBuilt() {
	o.built.Inc()
}

// MergedRefReused implements ref.Observer.
func (o *Observer) MergedRefReused() {
	o.reused.Inc()
}

// MergedRefPropagated implements ref.Observer.
func (o *Observer) MergedRefPropagated(targets int) {
	o.sets.Inc()
	o.targets.Observe(float64(targets))
}
