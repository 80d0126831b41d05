// Package container is a scoped dependency-injection runtime.
//
// # Overview
//
// A Scope holds bindings (Key → recipe) and resolves object graphs on
// demand. Scopes form trees: a child sees the bindings of its ancestors,
// and closing a scope closes its whole subtree. A Forest gives scopes
// names and wires the trees.
//
// Classes nothing is bound to are built by a Factory looked up by
// reflect.Type in a Registry. Factories and MemberInjectors are normally
// generated ahead of time; this package only consumes them.
//
// # Bindings
//
//	m := container.NewModule("prod")
//
//	// Pre-built value
//	m.Bind(container.KeyOf[*Config]()).ToInstance(cfg)
//
//	// Interface → implementation, built through the implementation's Factory
//	m.Bind(container.KeyOf[Store]()).ToClass(container.TypeOf[*SQLStore]()).Singleton()
//
//	// Qualified key backed by a provider
//	m.Bind(container.KeyOf[*sql.DB]("analytics")).ToProvider(analyticsPool)
//
//	if err := scope.InstallModules(m); err != nil {
//	    return err
//	}
//
// # Resolving
//
//	// Untyped
//	raw, err := scope.GetInstance(container.KeyOf[Store]())
//
//	// Generic
//	store, err := container.Get[Store](scope)
//
//	// Deferred: resolved on every Get
//	p, err := scope.GetProvider(container.KeyOf[Store]())
//
//	// Deferred: resolved once, on the first successful Get
//	l, err := scope.GetLazy(container.KeyOf[Store]())
//	store, err := container.As[Store](l.Get())
//
// # Testing
//
// InstallTestModules installs an override table consulted before every
// other binding. It may be called once per scope:
//
//	scope.InstallTestModules(fakes)
//	scope.InstallModules(prod)  // fakes still win
//
// # Errors
//
// Failures are *Error values in one of three categories, matched with
// errors.Is against ErrLifecycle (closed scope, repeated test install),
// ErrConfiguration (nil bindings, missing factories) and ErrLookup
// (LookupProvider found nothing under the exact key).
//
// # Thread Safety
//
// Scopes may be used from many goroutines. Singletons are built at most
// once per key and scope, even when first requested concurrently.
package container
