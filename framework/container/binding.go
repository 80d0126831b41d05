package container

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Mode tags the recipe a Binding uses to satisfy its key.
type Mode int

const (
	// ModeDefault defers to the Factory registered for the bound class.
	ModeDefault Mode = iota
	// ModeInstance hands out a pre-built value.
	ModeInstance
	// ModeClass builds the target class through its Factory.
	ModeClass
	// ModeProviderClass builds a Provider through its Factory, then calls Get.
	ModeProviderClass
	// ModeProviderInstance calls Get on a supplied Provider.
	ModeProviderInstance
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeInstance:
		return "instance"
	case ModeClass:
		return "class"
	case ModeProviderClass:
		return "provider-class"
	case ModeProviderInstance:
		return "provider-instance"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Provider hands out instances on demand. Bindings to a provider class or
// provider instance are satisfied through it, and the accessors returned by
// a Scope implement it too.
type Provider interface {
	Get() (any, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func() (any, error)

func (f ProviderFunc) Get() (any, error) { return f() }

// Binding describes how to satisfy a request for a Key. Bindings are
// authored through Module.Bind. Installing copies the binding, so later
// builder calls do not reach the installed recipe.
type Binding struct {
	key        Key
	mode       Mode
	instance   any
	target     reflect.Type
	provider   Provider
	singleton  bool
	releasable bool
}

// Key returns the key the binding satisfies.
func (b *Binding) Key() Key { return b.key }

// Mode returns the recipe kind.
func (b *Binding) Mode() Mode { return b.mode }

// Target returns the class of a ToClass or ToProviderClass binding, or nil.
func (b *Binding) Target() reflect.Type { return b.target }

// IsSingleton reports whether the value is cached by the declaring scope.
func (b *Binding) IsSingleton() bool { return b.singleton }

// IsReleasable reports whether Scope.Release may evict the cached value.
func (b *Binding) IsReleasable() bool { return b.releasable }

func (b *Binding) String() string {
	return fmt.Sprintf("%s -> %s", b.key, b.mode)
}

// validate reports why b cannot be installed, or nil.
func (b *Binding) validate() error {
	if b.key.Type == nil {
		return errors.Errorf("binding has no class")
	}
	switch b.mode {
	case ModeClass, ModeProviderClass:
		if b.target == nil {
			return errors.Errorf("binding for [%s] has no target class", b.key)
		}
	case ModeProviderInstance:
		if b.provider == nil {
			return errors.Errorf("binding for [%s] has a nil provider", b.key)
		}
	}
	return nil
}

// BindingBuilder implements the fluent binding API:
//
//	m.Bind(container.KeyOf[Store]()).ToClass(container.TypeOf[*SQLStore]()).Singleton()
//	m.Bind(container.KeyOf[string]("dsn")).ToInstance("postgres://...")
//
// Every terminal call rewrites the same Binding, which the Module already holds.
type BindingBuilder struct {
	binding *Binding
}

// Named qualifies the bound key.
func (bb *BindingBuilder) Named(name string) *BindingBuilder {
	bb.binding.key.Name = name
	return bb
}

// ToInstance binds the key to value.
func (bb *BindingBuilder) ToInstance(value any) *BindingBuilder {
	bb.binding.mode = ModeInstance
	bb.binding.instance = value
	return bb
}

// ToClass binds the key to another class, built through that class's Factory.
func (bb *BindingBuilder) ToClass(target reflect.Type) *BindingBuilder {
	bb.binding.mode = ModeClass
	bb.binding.target = target
	return bb
}

// ToProviderClass binds the key to a Provider class. The provider itself is
// built through its Factory on every resolution, then asked for a value.
func (bb *BindingBuilder) ToProviderClass(target reflect.Type) *BindingBuilder {
	bb.binding.mode = ModeProviderClass
	bb.binding.target = target
	return bb
}

// ToProvider binds the key to a supplied Provider.
func (bb *BindingBuilder) ToProvider(p Provider) *BindingBuilder {
	bb.binding.mode = ModeProviderInstance
	bb.binding.provider = p
	return bb
}

// ToProviderFunc is a shorthand for ToProvider(ProviderFunc(fn)).
func (bb *BindingBuilder) ToProviderFunc(fn func() (any, error)) *BindingBuilder {
	if fn == nil {
		return bb.ToProvider(nil)
	}
	return bb.ToProvider(ProviderFunc(fn))
}

// Singleton caches the resolved value in the scope the binding is installed in.
func (bb *BindingBuilder) Singleton() *BindingBuilder {
	bb.binding.singleton = true
	return bb
}

// Releasable marks a singleton as evictable through Scope.Release.
func (bb *BindingBuilder) Releasable() *BindingBuilder {
	bb.binding.singleton = true
	bb.binding.releasable = true
	return bb
}

// Binding returns the binding under construction.
func (bb *BindingBuilder) Binding() *Binding { return bb.binding }
