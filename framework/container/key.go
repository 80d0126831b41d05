package container

import (
	"fmt"
	"reflect"
)

// Key identifies a binding: a class (reflect.Type) plus an optional
// qualifier name. Two keys are equal iff both parts match.
type Key struct {
	Type reflect.Type
	Name string
}

// NewKey builds a key for t, optionally qualified by name.
func NewKey(t reflect.Type, name string) Key {
	return Key{Type: t, Name: name}
}

// KeyOf returns the key for T. Interfaces work too:
//
//	container.KeyOf[Repository]()          // unqualified
//	container.KeyOf[*sql.DB]("analytics")  // qualified
func KeyOf[T any](name ...string) Key {
	k := Key{Type: TypeOf[T]()}
	if len(name) > 0 {
		k.Name = name[0]
	}
	return k
}

// TypeOf returns the reflect.Type of T without needing a value, so that
// interface types keep their identity.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Unqualified drops the qualifier. Factories are looked up by class only.
func (k Key) Unqualified() Key {
	return Key{Type: k.Type}
}

func (k Key) String() string {
	if k.Type == nil {
		return "<nil>"
	}
	if k.Name == "" {
		return k.Type.String()
	}
	return fmt.Sprintf("%s@%s", k.Type, k.Name)
}
