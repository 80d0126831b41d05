package app

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/pkg/errors"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/debug"
	"github.com/km-arc/go-inject/framework/providers"
	"github.com/km-arc/go-inject/framework/routing"
)

// Application owns the scope forest and its root scope. The framework
// modules (config, logging, routing, debug) are installed into the root
// scope; user modules go through Register.
type Application struct {
	Forest *container.Forest
	Root   *container.Scope

	cfg    *config.Config
	logger *logrus.Logger
	server *http.Server

	mountOnce sync.Once
	handler   http.Handler
	mountErr  error
}

// New loads configuration from envFiles and builds the root scope.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.Container.Level())

	opts := []container.ScopeOption{
		container.WithLogger(logger),
		container.WithMetrics(metrics.NewRegistry()),
	}
	if cfg.Container.StrictBindings {
		opts = append(opts, container.WithStrictBindings())
	}
	forest := container.NewForest(opts...)
	root := forest.OpenScope(cfg.Container.RootScope)

	a := &Application{Forest: forest, Root: root, cfg: cfg, logger: logger}
	err := root.InstallModules(
		providers.ConfigModule(cfg),
		providers.LoggingModule(logger),
		providers.RoutingModule(logger),
		providers.DebugModule(forest, logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "install framework modules")
	}
	return a, nil
}

// Register installs user modules into the root scope.
func (a *Application) Register(modules ...*container.Module) error {
	return a.Root.InstallModules(modules...)
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *logrus.Logger { return a.logger }

// Router resolves *routing.Router from the root scope.
func (a *Application) Router() (*routing.Router, error) {
	return container.Get[*routing.Router](a.Root)
}

// Handler resolves the router and, when the debug server is enabled, mounts
// the scope inspection routes on it. The routes are mounted on the first
// call; later calls return the same handler.
func (a *Application) Handler() (http.Handler, error) {
	a.mountOnce.Do(func() {
		a.handler, a.mountErr = a.mount()
	})
	return a.handler, a.mountErr
}

func (a *Application) mount() (http.Handler, error) {
	r, err := a.Router()
	if err != nil {
		return nil, err
	}
	if a.cfg.Debug.Enabled {
		h, err := container.Get[*debug.Handler](a.Root)
		if err != nil {
			return nil, err
		}
		h.Routes(r)
	}
	return r, nil
}

// Run serves HTTP on addr until Shutdown is called. An empty addr uses
// DEBUG_ADDR.
func (a *Application) Run(addr string) error {
	if addr == "" {
		addr = a.cfg.Debug.Addr
	}
	h, err := a.Handler()
	if err != nil {
		return err
	}
	a.server = &http.Server{Addr: addr, Handler: h}
	a.logger.WithFields(logrus.Fields{
		"app":   a.cfg.App.Name,
		"env":   a.Environment(),
		"debug": a.IsDebug(),
		"addr":  addr,
	}).Info("server starting")

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "serve")
	}
	return nil
}

// Shutdown stops the server, if running, and closes every scope.
func (a *Application) Shutdown(ctx context.Context) error {
	defer a.Forest.Reset()
	if a.server == nil {
		return nil
	}
	return errors.Wrap(a.server.Shutdown(ctx), "shutdown")
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.cfg.App.Env }

// IsLocal reports whether APP_ENV is "local".
func (a *Application) IsLocal() bool { return a.Environment() == "local" }

// IsProduction reports whether APP_ENV is "production".
func (a *Application) IsProduction() bool { return a.Environment() == "production" }

// IsTesting reports whether APP_ENV is "testing".
func (a *Application) IsTesting() bool { return a.Environment() == "testing" }

// IsDebug reports whether APP_DEBUG is set.
func (a *Application) IsDebug() bool { return a.cfg.App.Debug }
