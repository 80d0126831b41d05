package container_test

import (
	"testing"

	"github.com/km-arc/go-inject/framework/container"
)

func newForest(t *testing.T) *container.Forest {
	t.Helper()
	return container.NewForest(
		container.WithRegistry(newRegistry()),
		container.WithLogger(quietLogger()),
	)
}

func TestForest_OpenScope_GetOrCreate(t *testing.T) {
	f := newForest(t)
	a := f.OpenScope("app")
	if again := f.OpenScope("app"); again != a {
		t.Error("OpenScope should return the existing scope")
	}
	if got, ok := f.Lookup("app"); !ok || got != a {
		t.Error("Lookup should find the opened scope")
	}
}

func TestForest_OpenScopes_BuildsChain(t *testing.T) {
	f := newForest(t)
	leaf, err := f.OpenScopes("app", "activity", "fragment")
	if err != nil {
		t.Fatalf("OpenScopes: %v", err)
	}
	if leaf.Name() != "fragment" || leaf.Parent().Name() != "activity" || leaf.Root().Name() != "app" {
		t.Errorf("unexpected chain ending at %q", leaf.Name())
	}
	if n := len(f.Scopes()); n != 3 {
		t.Errorf("Scopes: got %d, want 3", n)
	}
	if roots := f.Roots(); len(roots) != 1 || roots[0].Name() != "app" {
		t.Errorf("Roots: got %v", roots)
	}
}

func TestForest_OpenScopes_ConflictingParent(t *testing.T) {
	f := newForest(t)
	if _, err := f.OpenScopes("a", "shared"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.OpenScopes("b", "shared"); !container.IsConfiguration(err) {
		t.Errorf("got %v, want configuration error", err)
	}
}

func TestForest_OpenScopes_NoNames(t *testing.T) {
	if _, err := newForest(t).OpenScopes(); !container.IsConfiguration(err) {
		t.Errorf("got %v, want configuration error", err)
	}
}

func TestForest_SubScopeRegistersName(t *testing.T) {
	f := newForest(t)
	app := f.OpenScope("app")
	child, err := app.OpenSubScope("session")
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := f.Lookup("session"); !ok || got != child {
		t.Error("sub-scopes of forest scopes should be registered in the forest")
	}
}

func TestForest_DescendantSeesAncestorBindings(t *testing.T) {
	f := newForest(t)
	foo := &Foo{Name: "app"}
	mustInstall(t, f.OpenScope("app"), fooModule("app", foo))
	leaf, _ := f.OpenScopes("app", "a", "b")

	if got := container.MustGet[*Foo](leaf); got != foo {
		t.Errorf("got %+v, want ancestor binding", got)
	}
}

func TestForest_CloseScope_RemovesSubtree(t *testing.T) {
	f := newForest(t)
	leaf, _ := f.OpenScopes("app", "a", "b")
	sibling, _ := f.OpenScopes("app", "c")

	f.CloseScope("a")

	if !leaf.IsClosed() {
		t.Error("descendant should be closed")
	}
	for _, name := range []string{"a", "b"} {
		if _, ok := f.Lookup(name); ok {
			t.Errorf("%q should be removed from the forest", name)
		}
	}
	if sibling.IsClosed() {
		t.Error("sibling subtree must stay open")
	}
	if _, ok := f.Lookup("app"); !ok {
		t.Error("ancestor must stay registered")
	}
	f.CloseScope("unknown")
}

func TestForest_ReopenAfterClose(t *testing.T) {
	f := newForest(t)
	old := f.OpenScope("app")
	f.CloseScope("app")

	fresh := f.OpenScope("app")
	if fresh == old || fresh.IsClosed() {
		t.Error("reopening a closed name should create a new open scope")
	}
}

func TestForest_Reset(t *testing.T) {
	f := newForest(t)
	a := f.OpenScope("a")
	b, _ := f.OpenScopes("b", "b1")
	f.Reset()

	if !a.IsClosed() || !b.IsClosed() {
		t.Error("Reset should close every scope")
	}
	if n := len(f.Scopes()); n != 0 {
		t.Errorf("Scopes after Reset: got %d, want 0", n)
	}
}
