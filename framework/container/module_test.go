package container_test

import (
	"testing"

	"github.com/km-arc/go-inject/framework/container"
)

func TestModule_BindAppendsInOrder(t *testing.T) {
	m := container.NewModule("m")
	m.Bind(container.KeyOf[*Foo]()).ToInstance(&Foo{})
	m.Bind(container.KeyOf[*Bar]()).Named("x").Singleton()

	bs := m.Bindings()
	if m.Name() != "m" || m.Len() != 2 || len(bs) != 2 {
		t.Fatalf("got name=%q len=%d", m.Name(), m.Len())
	}
	if bs[0].Mode() != container.ModeInstance {
		t.Errorf("first mode: got %s", bs[0].Mode())
	}
	if bs[1].Key() != container.KeyOf[*Bar]("x") || !bs[1].IsSingleton() || bs[1].Mode() != container.ModeDefault {
		t.Errorf("second binding: got %s singleton=%v", bs[1], bs[1].IsSingleton())
	}
}

func TestModule_BindingsReturnsCopy(t *testing.T) {
	m := container.NewModule("m")
	m.Bind(container.KeyOf[*Foo]())
	bs := m.Bindings()
	bs[0] = nil
	if m.Bindings()[0] == nil {
		t.Error("Bindings should return a copy")
	}
}

func TestBindingBuilder_ReleasableImpliesSingleton(t *testing.T) {
	b := container.NewModule("m").Bind(container.KeyOf[*Foo]()).Releasable().Binding()
	if !b.IsSingleton() || !b.IsReleasable() {
		t.Errorf("got singleton=%v releasable=%v", b.IsSingleton(), b.IsReleasable())
	}
}

func TestBindingBuilder_TargetRecorded(t *testing.T) {
	b := container.NewModule("m").Bind(container.KeyOf[Greeter]()).ToClass(container.TypeOf[*englishGreeter]()).Binding()
	if b.Target() != container.TypeOf[*englishGreeter]() || b.Mode() != container.ModeClass {
		t.Errorf("got %s target=%v", b, b.Target())
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  container.Key
		want string
	}{
		{container.KeyOf[*Foo](), "*container_test.Foo"},
		{container.KeyOf[*Foo]("db"), "*container_test.Foo@db"},
		{container.KeyOf[Greeter](), "container_test.Greeter"},
		{container.Key{}, "<nil>"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String: got %q, want %q", got, tt.want)
		}
	}
}

func TestKey_Equality(t *testing.T) {
	if container.KeyOf[*Foo]("a") == container.KeyOf[*Foo]("b") {
		t.Error("different qualifiers must not be equal")
	}
	if container.KeyOf[*Foo]("a") != container.NewKey(container.TypeOf[*Foo](), "a") {
		t.Error("same class and qualifier must be equal")
	}
	if container.KeyOf[*Foo]("a").Unqualified() != container.KeyOf[*Foo]() {
		t.Error("Unqualified should drop the name")
	}
}

func TestError_Categories(t *testing.T) {
	err := &container.Error{Category: container.Lookup, Op: "lookup provider", Scope: "s"}
	if !container.IsLookup(err) || container.IsLifecycle(err) || container.IsConfiguration(err) {
		t.Errorf("category matching broken for %v", err)
	}
	if container.Lifecycle.String() != "lifecycle" || container.Category(0).String() != "unknown" {
		t.Error("Category.String mismatch")
	}
}
