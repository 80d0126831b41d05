package container

import (
	"reflect"
	"sync"
)

//go:generate mockgen -destination=containertest/mock_collaborators.go -package=containertest github.com/km-arc/go-inject/framework/container Factory,MemberInjector

// Factory knows how to build one class. Factories are normally generated
// ahead of time and registered by class; the scope only consumes them.
type Factory interface {
	// CreateInstance builds a new instance, resolving dependencies from s.
	CreateInstance(s *Scope) (any, error)

	// TargetScope names the scope annotation the class declares, or "".
	// A scoped class is built in and cached by the nearest scope carrying it.
	TargetScope() string

	// IsSingleton reports whether one instance is shared per caching scope.
	IsSingleton() bool

	// IsReleasable reports whether the cached instance may be evicted early.
	IsReleasable() bool
}

// MemberInjector performs field/method injection on a constructed instance.
type MemberInjector interface {
	Inject(target any, s *Scope) error
}

// InjectorFunc adapts a plain function to MemberInjector.
type InjectorFunc func(target any, s *Scope) error

func (f InjectorFunc) Inject(target any, s *Scope) error { return f(target, s) }

// ── Factory adapter ───────────────────────────────────────────────────────────

// FactoryOption configures a factory built by NewFactory.
type FactoryOption func(*funcFactory)

// InScope declares the scope annotation the class is bound to.
func InScope(annotation string) FactoryOption {
	return func(f *funcFactory) { f.target = annotation }
}

// AsSingleton shares one instance per caching scope.
func AsSingleton() FactoryOption {
	return func(f *funcFactory) { f.singleton = true }
}

// AsReleasable marks the cached instance as evictable by Scope.Release.
func AsReleasable() FactoryOption {
	return func(f *funcFactory) {
		f.singleton = true
		f.releasable = true
	}
}

type funcFactory struct {
	create     func(s *Scope) (any, error)
	target     string
	singleton  bool
	releasable bool
}

// NewFactory wraps create as a Factory.
//
//	container.RegisterFactory[*Mailer](container.NewFactory(func(s *container.Scope) (any, error) {
//	    cfg, err := container.Get[*config.Config](s)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewMailer(cfg.Mail), nil
//	}, container.AsSingleton()))
func NewFactory(create func(s *Scope) (any, error), opts ...FactoryOption) Factory {
	f := &funcFactory{create: create}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *funcFactory) CreateInstance(s *Scope) (any, error) { return f.create(s) }
func (f *funcFactory) TargetScope() string                  { return f.target }
func (f *funcFactory) IsSingleton() bool                    { return f.singleton }
func (f *funcFactory) IsReleasable() bool                   { return f.releasable }

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry locates factories and member injectors by class.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]Factory
	injectors map[reflect.Type]MemberInjector
}

// DefaultRegistry is used by scopes and forests that are not given one.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[reflect.Type]Factory),
		injectors: make(map[reflect.Type]MemberInjector),
	}
}

// AddFactory registers f for t, replacing any previous factory.
func (r *Registry) AddFactory(t reflect.Type, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[t] = f
}

// AddMemberInjector registers mi for t, replacing any previous injector.
func (r *Registry) AddMemberInjector(t reflect.Type, mi MemberInjector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.injectors[t] = mi
}

// Factory returns the factory registered for t.
func (r *Registry) Factory(t reflect.Type) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[t]
	return f, ok
}

// MemberInjector returns the member injector registered for t.
func (r *Registry) MemberInjector(t reflect.Type) (MemberInjector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mi, ok := r.injectors[t]
	return mi, ok
}

// RegisterFactory registers f for T in DefaultRegistry.
func RegisterFactory[T any](f Factory) {
	DefaultRegistry.AddFactory(TypeOf[T](), f)
}

// RegisterMemberInjector registers mi for T in DefaultRegistry.
func RegisterMemberInjector[T any](mi MemberInjector) {
	DefaultRegistry.AddMemberInjector(TypeOf[T](), mi)
}
