package container

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ScopedProvider resolves its key against its scope on every Get.
type ScopedProvider struct {
	scope *Scope
	key   Key
}

// Key returns the key the provider resolves.
func (p *ScopedProvider) Key() Key { return p.key }

// Scope returns the scope the provider resolves against.
func (p *ScopedProvider) Scope() *Scope { return p.scope }

// Get resolves the key. It fails with a lifecycle error once the scope is
// closed, whatever the key.
func (p *ScopedProvider) Get() (any, error) {
	return p.scope.resolve("provider get", p.key)
}

// Lazy resolves its key on the first successful Get and keeps the value.
// After that, Get no longer looks at the scope, so a closed scope does not
// affect a Lazy that already has its value.
type Lazy struct {
	provider *ScopedProvider

	mu    sync.Mutex
	done  atomic.Bool
	value any
}

// Key returns the key the lazy resolves.
func (l *Lazy) Key() Key { return l.provider.key }

// Get returns the cached value, resolving it first if needed. Failures are
// not cached.
func (l *Lazy) Get() (any, error) {
	if l.done.Load() {
		return l.value, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done.Load() {
		return l.value, nil
	}
	v, err := l.provider.Get()
	if err != nil {
		return nil, err
	}
	l.value = v
	l.done.Store(true)
	return v, nil
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// As type-asserts the result of a Get-style call.
//
//	repo, err := container.As[Repository](lazy.Get())
func As[T any](v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.Errorf("container: expected %s, resolved to %T", TypeOf[T](), v)
	}
	return typed, nil
}

// Get resolves T (optionally qualified) from s.
//
//	db, err := container.Get[*sql.DB](scope, "analytics")
func Get[T any](s *Scope, name ...string) (T, error) {
	return As[T](s.GetInstance(KeyOf[T](name...)))
}

// MustGet is like Get but panics on failure.
func MustGet[T any](s *Scope, name ...string) T {
	v, err := Get[T](s, name...)
	if err != nil {
		panic(err)
	}
	return v
}
