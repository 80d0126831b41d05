package container

import (
	metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// ScopeOption configures a scope or forest. Sub-scopes inherit the registry,
// logger, metrics and strictness of their parent.
type ScopeOption func(*scopeConfig)

type scopeConfig struct {
	registry    *Registry
	logger      *logrus.Logger
	metrics     metrics.Registry
	strict      bool
	annotations []string
}

func newScopeConfig(opts []ScopeOption) scopeConfig {
	cfg := scopeConfig{
		registry: DefaultRegistry,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.NewRegistry()
	}
	return cfg
}

// inherit copies what a child shares with its parent.
func (c scopeConfig) inherit() scopeConfig {
	return scopeConfig{
		registry: c.registry,
		logger:   c.logger,
		metrics:  c.metrics,
		strict:   c.strict,
	}
}

// WithRegistry makes the scope look factories and member injectors up in r
// instead of DefaultRegistry.
func WithRegistry(r *Registry) ScopeOption {
	return func(c *scopeConfig) { c.registry = r }
}

// WithLogger routes scope logs to l.
func WithLogger(l *logrus.Logger) ScopeOption {
	return func(c *scopeConfig) { c.logger = l }
}

// WithMetrics records scope counters in r.
func WithMetrics(r metrics.Registry) ScopeOption {
	return func(c *scopeConfig) { c.metrics = r }
}

// WithStrictBindings rejects a second binding for a key already bound in
// the same table instead of letting the last one win.
func WithStrictBindings() ScopeOption {
	return func(c *scopeConfig) { c.strict = true }
}

// WithScopeAnnotations adds scope annotations on top of the scope's name.
func WithScopeAnnotations(annotations ...string) ScopeOption {
	return func(c *scopeConfig) { c.annotations = append(c.annotations, annotations...) }
}
