package container

import (
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// ── Scope ─────────────────────────────────────────────────────────────────────

// Scope is a node of the injection tree. It owns a binding table, a
// one-shot override table for tests, a singleton cache and its children.
//
// Resolution order for a key, from the requesting scope upward:
//  1. the scope's override table, then its binding table
//  2. the same two tables of the parent, and so on to the root
//  3. the Factory registered for the key's class
//
// A child's binding therefore wins over an override installed in a parent.
//
// Once closed, a scope and its whole subtree refuse every operation.
type Scope struct {
	name   string
	parent *Scope
	forest *Forest
	cfg    scopeConfig
	log    *logrus.Entry
	stats  *scopeStats

	closed atomic.Bool

	mu                 sync.RWMutex
	children           map[string]*Scope
	annotations        map[string]struct{}
	bindings           map[Key]*Binding
	overrides          map[Key]*Binding
	overridesInstalled bool
	singletons         map[Key]*singletonCell
}

// NewScope creates a standalone root scope.
func NewScope(name string, opts ...ScopeOption) *Scope {
	return newScope(name, nil, nil, newScopeConfig(opts))
}

func newScope(name string, parent *Scope, forest *Forest, cfg scopeConfig) *Scope {
	s := &Scope{
		name:        name,
		parent:      parent,
		forest:      forest,
		cfg:         cfg,
		log:         cfg.logger.WithField("scope", name),
		stats:       newScopeStats(cfg.metrics, name),
		children:    make(map[string]*Scope),
		annotations: map[string]struct{}{name: {}},
		bindings:    make(map[Key]*Binding),
		overrides:   make(map[Key]*Binding),
		singletons:  make(map[Key]*singletonCell),
	}
	for _, a := range cfg.annotations {
		s.annotations[a] = struct{}{}
	}
	return s
}

// Name returns the scope name.
func (s *Scope) Name() string { return s.name }

// Parent returns the parent scope, or nil for a root.
func (s *Scope) Parent() *Scope { return s.parent }

// Root walks up to the root of the tree.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Metrics returns the registry the scope records its counters in.
func (s *Scope) Metrics() metrics.Registry { return s.cfg.metrics }

// IsClosed reports whether Close has been called on this scope or an ancestor.
func (s *Scope) IsClosed() bool { return s.closed.Load() }

// Children returns the open children, sorted by name.
func (s *Scope) Children() []*Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Scope, 0, len(s.children))
	for _, c := range s.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Child returns the open child called name.
func (s *Scope) Child(name string) (*Scope, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.children[name]
	return c, ok
}

// OpenSubScope returns the child called name, creating it if needed. An
// empty name opens an anonymous child with a generated name.
func (s *Scope) OpenSubScope(name string) (*Scope, error) {
	if name == "" {
		name = uuid.NewString()
	}
	if s.forest != nil {
		return s.forest.openChild(s, name)
	}
	return s.openChild(name)
}

func (s *Scope) openChild(name string) (*Scope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IsClosed() {
		return nil, s.lifecycleError("open sub-scope", nil, "scope is closed")
	}
	if c, ok := s.children[name]; ok {
		return c, nil
	}
	c := newScope(name, s, s.forest, s.cfg.inherit())
	s.children[name] = c
	s.log.WithField("child", name).Debug("sub-scope opened")
	return c, nil
}

func (s *Scope) removeChild(c *Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.children[c.name] == c {
		delete(s.children, c.name)
	}
}

// ── Scope annotations ─────────────────────────────────────────────────────────

// BindScopeAnnotation lets classes annotated with annotation be built and
// cached by this scope. The scope name is always an annotation.
func (s *Scope) BindScopeAnnotation(annotation string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.annotations[annotation] = struct{}{}
}

// HasScopeAnnotation reports whether annotation is bound to this scope.
func (s *Scope) HasScopeAnnotation(annotation string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.annotations[annotation]
	return ok
}

func (s *Scope) annotatedAncestor(annotation string) *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.HasScopeAnnotation(annotation) {
			return cur
		}
	}
	return nil
}

// ── Installation ──────────────────────────────────────────────────────────────

// InstallModules merges the modules' bindings into the binding table.
//
// A nil module or nil binding aborts the call with a configuration error.
// Bindings merged before the failing entry stay installed.
func (s *Scope) InstallModules(modules ...*Module) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IsClosed() {
		return s.lifecycleError("install modules", nil, "scope is closed")
	}
	return s.install(s.bindings, "install modules", modules)
}

// InstallTestModules installs the modules into the override table, which
// wins over every other binding in this scope. It may be called exactly once
// per scope, even with no modules; a second call is a lifecycle error.
func (s *Scope) InstallTestModules(modules ...*Module) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IsClosed() {
		return s.lifecycleError("install test modules", nil, "scope is closed")
	}
	if s.overridesInstalled {
		return s.lifecycleError("install test modules", nil, "test modules were already installed")
	}
	s.overridesInstalled = true
	return s.install(s.overrides, "install test modules", modules)
}

// install must hold mu.Lock.
func (s *Scope) install(table map[Key]*Binding, op string, modules []*Module) error {
	for i, m := range modules {
		if m == nil {
			return s.configError(op, nil, "module #%d is nil", i)
		}
		for j, b := range m.bindings {
			if b == nil {
				return s.configError(op, nil, "module %q has a nil binding at #%d", m.name, j)
			}
			if err := b.validate(); err != nil {
				return s.configError(op, &b.key, "module %q: %v", m.name, err)
			}
			if _, dup := table[b.key]; dup {
				if s.cfg.strict {
					return s.configError(op, &b.key, "module %q binds a key that is already bound", m.name)
				}
				s.log.WithField("key", b.key.String()).Debug("binding replaced")
			}
			cp := *b
			table[cp.key] = &cp
		}
		s.log.WithFields(logrus.Fields{
			"module":   m.name,
			"bindings": len(m.bindings),
			"op":       op,
		}).Debug("module installed")
	}
	return nil
}

// ── Public resolution API ─────────────────────────────────────────────────────

// GetInstance resolves key, walking up to ancestors and finally falling back
// to the class's Factory.
func (s *Scope) GetInstance(key Key) (any, error) {
	return s.resolve("get instance", key)
}

// GetProvider returns an accessor that resolves key on every Get. Creating
// it does no resolution; Get fails once the scope is closed.
func (s *Scope) GetProvider(key Key) (*ScopedProvider, error) {
	if s.IsClosed() {
		return nil, s.lifecycleError("get provider", &key, "scope is closed")
	}
	return &ScopedProvider{scope: s, key: key}, nil
}

// GetLazy returns an accessor that resolves key on its first successful Get
// and returns the same value afterwards.
func (s *Scope) GetLazy(key Key) (*Lazy, error) {
	if s.IsClosed() {
		return nil, s.lifecycleError("get lazy", &key, "scope is closed")
	}
	return &Lazy{provider: &ScopedProvider{scope: s, key: key}}, nil
}

// LookupProvider returns a Provider for the binding registered in this
// scope under exactly key. Ancestors and factories are not consulted; a
// missing binding is a lookup error.
func (s *Scope) LookupProvider(key Key) (Provider, error) {
	if s.IsClosed() {
		return nil, s.lifecycleError("lookup provider", &key, "scope is closed")
	}
	b, ok := s.localBinding(key)
	if !ok {
		return nil, newError(Lookup, "lookup provider", s.name, &key, "no binding registered")
	}
	return s.ToProvider(b)
}

// ToProvider converts b into a Provider resolving against this scope.
func (s *Scope) ToProvider(b *Binding) (Provider, error) {
	if b == nil {
		return nil, s.configError("to provider", nil, "binding is nil")
	}
	if err := b.validate(); err != nil {
		return nil, s.configError("to provider", &b.key, "%v", err)
	}
	return ProviderFunc(func() (any, error) {
		if s.IsClosed() {
			return nil, s.lifecycleError("provider get", &b.key, "scope is closed")
		}
		return s.provide(b, s)
	}), nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

func (s *Scope) resolve(op string, key Key) (any, error) {
	if s.IsClosed() {
		return nil, s.lifecycleError(op, &key, "scope is closed")
	}
	if key.Type == nil {
		return nil, s.configError(op, &key, "key has no class")
	}
	s.stats.resolutions.Inc(1)

	for cur := s; cur != nil; cur = cur.parent {
		if cur != s && cur.IsClosed() {
			return nil, cur.lifecycleError(op, &key, "ancestor scope is closed")
		}
		if b, ok := cur.localBinding(key); ok {
			return cur.provide(b, s)
		}
	}
	return s.fromFactory(key)
}

// localBinding checks the override table, then the binding table.
func (s *Scope) localBinding(key Key) (*Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.overrides[key]; ok {
		return b, true
	}
	b, ok := s.bindings[key]
	return b, ok
}

// provide satisfies b, which is installed in s, on behalf of origin.
// Singletons are built against and cached by s; everything else is built
// against origin so that bindings of the requesting subtree stay visible.
func (s *Scope) provide(b *Binding, origin *Scope) (any, error) {
	if !b.singleton {
		return origin.construct(b)
	}
	return s.singleton(b.key, b.releasable, func() (any, error) {
		return s.construct(b)
	})
}

func (s *Scope) construct(b *Binding) (any, error) {
	switch b.mode {
	case ModeInstance:
		return b.instance, nil
	case ModeClass:
		return s.build(b.target)
	case ModeProviderClass:
		raw, err := s.build(b.target)
		if err != nil {
			return nil, err
		}
		p, ok := raw.(Provider)
		if !ok {
			return nil, s.configError("resolve", &b.key, "%s does not implement Provider", b.target)
		}
		return s.fromProvider(b.key, p)
	case ModeProviderInstance:
		return s.fromProvider(b.key, b.provider)
	default:
		return s.build(b.key.Type)
	}
}

func (s *Scope) fromProvider(key Key, p Provider) (any, error) {
	v, err := p.Get()
	if err != nil {
		return nil, errors.Wrapf(err, "provider for [%s]", key)
	}
	return v, nil
}

// build creates an instance of t through its Factory and injects members.
func (s *Scope) build(t reflect.Type) (any, error) {
	f, ok := s.cfg.registry.Factory(t)
	if !ok {
		return nil, s.configError("resolve", &Key{Type: t}, "no factory registered")
	}
	return s.create(t, f)
}

func (s *Scope) create(t reflect.Type, f Factory) (any, error) {
	v, err := f.CreateInstance(s)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", t)
	}
	if mi, ok := s.cfg.registry.MemberInjector(t); ok {
		if err := mi.Inject(v, s); err != nil {
			return nil, errors.Wrapf(err, "injecting members of %s", t)
		}
	}
	return v, nil
}

// fromFactory is the last resort for a key nothing is bound to. Qualifiers
// are ignored: factories are found by class alone.
func (s *Scope) fromFactory(key Key) (any, error) {
	f, ok := s.cfg.registry.Factory(key.Type)
	if !ok {
		return nil, s.configError("resolve", &key, "no binding and no factory registered")
	}
	s.stats.factories.Inc(1)
	s.log.WithField("key", key.String()).Debug("falling back to factory")

	target := s
	if annotation := f.TargetScope(); annotation != "" {
		target = s.annotatedAncestor(annotation)
		if target == nil {
			return nil, s.configError("resolve", &key, "no scope bound to annotation %q", annotation)
		}
	} else if !f.IsSingleton() {
		return s.create(key.Type, f)
	}
	return target.singleton(key.Unqualified(), f.IsReleasable(), func() (any, error) {
		return target.create(key.Type, f)
	})
}

// ── Singleton cache ───────────────────────────────────────────────────────────

// singletonCell holds one cached value. Its mutex is held while the value
// is built, so concurrent first resolutions wait instead of building twice.
// A failed build leaves the cell empty for the next caller.
type singletonCell struct {
	mu         sync.Mutex
	built      bool
	value      any
	releasable bool
}

func (s *Scope) singleton(key Key, releasable bool, build func() (any, error)) (any, error) {
	s.mu.Lock()
	if s.IsClosed() {
		s.mu.Unlock()
		return nil, s.lifecycleError("resolve", &key, "scope is closed")
	}
	cell, ok := s.singletons[key]
	if !ok {
		cell = &singletonCell{releasable: releasable}
		s.singletons[key] = cell
	}
	s.mu.Unlock()

	cell.mu.Lock()
	defer cell.mu.Unlock()
	if cell.built {
		return cell.value, nil
	}
	v, err := build()
	if err != nil {
		return nil, err
	}
	cell.value, cell.built = v, true
	s.stats.singletons.Inc(1)
	return v, nil
}

// Release evicts cached values of releasable singletons. The next
// resolution builds them again. Non-releasable singletons are kept.
func (s *Scope) Release() {
	s.mu.Lock()
	released := 0
	for k, cell := range s.singletons {
		if cell.releasable {
			delete(s.singletons, k)
			released++
		}
	}
	children := s.childList()
	s.mu.Unlock()

	if released > 0 {
		s.log.WithField("released", released).Debug("releasable singletons evicted")
	}
	for _, c := range children {
		c.Release()
	}
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// Close closes the scope and its whole subtree. Ancestors and siblings are
// not affected. Closing twice is a no-op.
func (s *Scope) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	children := s.childList()
	s.children = make(map[string]*Scope)
	s.singletons = make(map[Key]*singletonCell)
	s.mu.Unlock()

	for _, c := range children {
		c.Close()
	}
	if s.parent != nil {
		s.parent.removeChild(s)
	}
	if s.forest != nil {
		s.forest.forget(s)
	}
	s.log.Debug("scope closed")
}

// childList must hold mu.
func (s *Scope) childList() []*Scope {
	out := make([]*Scope, 0, len(s.children))
	for _, c := range s.children {
		out = append(out, c)
	}
	return out
}

// ── Errors ────────────────────────────────────────────────────────────────────

func (s *Scope) lifecycleError(op string, key *Key, format string, args ...any) error {
	s.stats.lifecycle.Inc(1)
	return newError(Lifecycle, op, s.name, key, format, args...)
}

func (s *Scope) configError(op string, key *Key, format string, args ...any) error {
	err := newError(Configuration, op, s.name, key, format, args...)
	s.log.WithError(err).Warn("configuration error")
	return err
}
