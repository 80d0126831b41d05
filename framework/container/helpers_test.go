package container_test

import (
	"io"
	"sync/atomic"
	"testing"

	"github.com/km-arc/go-inject/framework/container"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Bar struct{ ID int64 }

type Foo struct {
	Bar  *Bar
	Name string
}

type Greeter interface{ Greet() string }

type englishGreeter struct{ Bar *Bar }

func (g *englishGreeter) Greet() string { return "hello" }

// counting hands out increasing ids so fresh instances are distinguishable.
var counting atomic.Int64

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newRegistry registers factories for *Bar, *Foo (depends on *Bar) and
// *englishGreeter.
func newRegistry() *container.Registry {
	r := container.NewRegistry()
	r.AddFactory(container.TypeOf[*Bar](), container.NewFactory(func(*container.Scope) (any, error) {
		return &Bar{ID: counting.Add(1)}, nil
	}))
	r.AddFactory(container.TypeOf[*Foo](), container.NewFactory(func(s *container.Scope) (any, error) {
		bar, err := container.Get[*Bar](s)
		if err != nil {
			return nil, err
		}
		return &Foo{Bar: bar}, nil
	}))
	r.AddFactory(container.TypeOf[*englishGreeter](), container.NewFactory(func(s *container.Scope) (any, error) {
		bar, err := container.Get[*Bar](s)
		if err != nil {
			return nil, err
		}
		return &englishGreeter{Bar: bar}, nil
	}))
	return r
}

func newScope(t *testing.T, name string, opts ...container.ScopeOption) *container.Scope {
	t.Helper()
	base := []container.ScopeOption{
		container.WithRegistry(newRegistry()),
		container.WithLogger(quietLogger()),
	}
	return container.NewScope(name, append(base, opts...)...)
}

func fooModule(name string, foo *Foo) *container.Module {
	m := container.NewModule(name)
	m.Bind(container.KeyOf[*Foo]()).ToInstance(foo)
	return m
}

func mustInstall(t *testing.T, s *container.Scope, modules ...*container.Module) {
	t.Helper()
	if err := s.InstallModules(modules...); err != nil {
		t.Fatalf("InstallModules: %v", err)
	}
}

var errTransient = errors.New("transient failure")
