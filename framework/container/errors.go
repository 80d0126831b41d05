package container

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category separates the three kinds of failure a scope reports.
type Category int

const (
	// Lifecycle errors: the scope is closed, or a one-shot operation was repeated.
	Lifecycle Category = iota + 1
	// Configuration errors: malformed modules, bindings or missing factories.
	Configuration
	// Lookup errors: nothing is bound under an exact key.
	Lookup
)

func (c Category) String() string {
	switch c {
	case Lifecycle:
		return "lifecycle"
	case Configuration:
		return "configuration"
	case Lookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its category.
var (
	ErrLifecycle     = errors.New("scope lifecycle violation")
	ErrConfiguration = errors.New("invalid container configuration")
	ErrLookup        = errors.New("no binding found")
)

// Error is returned by every Scope operation that fails for a container reason.
type Error struct {
	Category Category
	Op       string
	Scope    string
	Key      *Key
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("container: %s %s in scope %q", e.Op, e.Category, e.Scope)
	if e.Key != nil {
		msg += fmt.Sprintf(" for [%s]", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the category sentinel so callers can write errors.Is(err, ErrLookup).
func (e *Error) Is(target error) bool {
	switch target {
	case ErrLifecycle:
		return e.Category == Lifecycle
	case ErrConfiguration:
		return e.Category == Configuration
	case ErrLookup:
		return e.Category == Lookup
	}
	return false
}

// IsLifecycle reports whether err is (or wraps) a lifecycle error.
func IsLifecycle(err error) bool { return errors.Is(err, ErrLifecycle) }

// IsConfiguration reports whether err is (or wraps) a configuration error.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsLookup reports whether err is (or wraps) a lookup error.
func IsLookup(err error) bool { return errors.Is(err, ErrLookup) }

func newError(c Category, op, scope string, key *Key, format string, args ...any) *Error {
	return &Error{
		Category: c,
		Op:       op,
		Scope:    scope,
		Key:      key,
		Err:      errors.Errorf(format, args...),
	}
}
