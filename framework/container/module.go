package container

// Module is an ordered bundle of Bindings installed into a Scope together.
//
//	prod := container.NewModule("prod")
//	prod.Bind(container.KeyOf[Clock]()).ToInstance(SystemClock{})
//	prod.Bind(container.KeyOf[Store]()).ToClass(container.TypeOf[*SQLStore]()).Singleton()
//
//	scope.InstallModules(prod)
//
// Order only matters for duplicate keys (the last one wins unless the scope
// is strict) and for the order in which bindings are validated.
type Module struct {
	name     string
	bindings []*Binding
}

// NewModule creates an empty module. The name is used in logs and errors.
func NewModule(name string) *Module {
	return &Module{name: name}
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// Bind starts a binding for key. Without a terminal call the binding uses
// ModeDefault and is satisfied by the class's Factory.
func (m *Module) Bind(key Key) *BindingBuilder {
	b := &Binding{key: key}
	m.bindings = append(m.bindings, b)
	return &BindingBuilder{binding: b}
}

// Add appends pre-built bindings as-is. Nil entries are kept and make the
// whole module fail at install time.
func (m *Module) Add(bindings ...*Binding) *Module {
	m.bindings = append(m.bindings, bindings...)
	return m
}

// Bindings returns the bindings in authoring order.
func (m *Module) Bindings() []*Binding {
	out := make([]*Binding, len(m.bindings))
	copy(out, m.bindings)
	return out
}

// Len returns the number of bindings, nil entries included.
func (m *Module) Len() int { return len(m.bindings) }
