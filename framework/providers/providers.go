// Package providers holds the framework modules installed into the root
// scope of every Application.
//
// Bound keys:
//   - *config.Config
//   - *logrus.Logger
//   - *routing.Router   (singleton)
//   - *debug.Handler    (singleton)
package providers

import (
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/debug"
	"github.com/km-arc/go-inject/framework/routing"
)

// ── Config ────────────────────────────────────────────────────────────────────

// ConfigModule binds the loaded configuration.
func ConfigModule(cfg *config.Config) *container.Module {
	m := container.NewModule("config")
	m.Bind(container.KeyOf[*config.Config]()).ToInstance(cfg)
	return m
}

// ── Logging ───────────────────────────────────────────────────────────────────

// LoggingModule binds the application logger.
func LoggingModule(logger *logrus.Logger) *container.Module {
	m := container.NewModule("logging")
	m.Bind(container.KeyOf[*logrus.Logger]()).ToInstance(logger)
	return m
}

// ── Routing ───────────────────────────────────────────────────────────────────

// RoutingModule binds a router that logs requests through logger. The
// router is built on first use.
func RoutingModule(logger *logrus.Logger) *container.Module {
	m := container.NewModule("routing")
	m.Bind(container.KeyOf[*routing.Router]()).
		ToProviderFunc(func() (any, error) {
			return routing.New(logger), nil
		}).
		Singleton()
	return m
}

// ── Debug ─────────────────────────────────────────────────────────────────────

// DebugModule binds the scope inspection handler for forest.
func DebugModule(forest *container.Forest, logger *logrus.Logger) *container.Module {
	m := container.NewModule("debug")
	m.Bind(container.KeyOf[*debug.Handler]()).
		ToProviderFunc(func() (any, error) {
			return debug.NewHandler(forest, logger), nil
		}).
		Singleton()
	return m
}
