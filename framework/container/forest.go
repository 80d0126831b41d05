package container

import (
	"sort"
	"sync"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// Forest names scopes and wires them into trees. Bindings of an ancestor
// are visible to its descendants; closing a scope closes its subtree and
// removes it from the forest.
//
//	forest := container.NewForest()
//	app := forest.OpenScope("app")
//	session, err := forest.OpenScopes("app", "session")
type Forest struct {
	mu     sync.RWMutex
	cfg    scopeConfig
	scopes map[string]*Scope
	log    *logrus.Entry
}

// NewForest creates an empty forest. Options apply to every scope it opens.
func NewForest(opts ...ScopeOption) *Forest {
	cfg := newScopeConfig(opts)
	return &Forest{
		cfg:    cfg,
		scopes: make(map[string]*Scope),
		log:    cfg.logger.WithField("component", "forest"),
	}
}

// Metrics returns the registry the forest's scopes report to.
func (f *Forest) Metrics() metrics.Registry { return f.cfg.metrics }

// OpenScope returns the scope called name, creating it as a root if needed.
func (f *Forest) OpenScope(name string) *Scope {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.scopes[name]; ok {
		return s
	}
	s := newScope(name, nil, f, f.cfg.inherit())
	f.scopes[name] = s
	f.log.WithField("scope", name).Debug("root scope opened")
	return s
}

// OpenScopes opens a chain of scopes, each a child of the previous one, and
// returns the last. Existing scopes are reused; a scope that already exists
// under another parent is a configuration error.
func (f *Forest) OpenScopes(names ...string) (*Scope, error) {
	if len(names) == 0 {
		return nil, newError(Configuration, "open scopes", "", nil, "no scope names given")
	}
	cur := f.OpenScope(names[0])
	for _, name := range names[1:] {
		next, err := f.openChild(cur, name)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (f *Forest) openChild(parent *Scope, name string) (*Scope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.scopes[name]; ok {
		if s.parent != parent {
			return nil, newError(Configuration, "open scopes", name, nil,
				"scope is already a child of %q", parentName(s))
		}
		return s, nil
	}
	s, err := parent.openChild(name)
	if err != nil {
		return nil, err
	}
	f.scopes[name] = s
	return s, nil
}

// Lookup returns the open scope called name.
func (f *Forest) Lookup(name string) (*Scope, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.scopes[name]
	return s, ok
}

// Scopes returns every open scope, sorted by name.
func (f *Forest) Scopes() []*Scope {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*Scope, 0, len(f.scopes))
	for _, s := range f.scopes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Roots returns the open root scopes, sorted by name.
func (f *Forest) Roots() []*Scope {
	var roots []*Scope
	for _, s := range f.Scopes() {
		if s.parent == nil {
			roots = append(roots, s)
		}
	}
	return roots
}

// CloseScope closes the scope called name and its subtree. Unknown names
// are ignored.
func (f *Forest) CloseScope(name string) {
	s, ok := f.Lookup(name)
	if !ok {
		return
	}
	s.Close()
}

// Reset closes every scope in the forest.
func (f *Forest) Reset() {
	for _, s := range f.Roots() {
		s.Close()
	}
	f.log.Debug("forest reset")
}

// forget is called by Scope.Close.
func (f *Forest) forget(s *Scope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scopes[s.name] == s {
		delete(f.scopes, s.name)
	}
}

func parentName(s *Scope) string {
	if s.parent == nil {
		return ""
	}
	return s.parent.name
}
