package reactor

import (
	"reflect"

	"github.com/netreact/reactor/internal/graph"
)

// EqualFunc decides whether a node's freshly computed value counts as a
// change worth propagating. The default, used when no WithEqual option is
// given, is Go's == operator, recovered against panicking on an
// uncomparable dynamic type.
type EqualFunc[T any] func(a, b T) bool

type config[T any] struct {
	equal EqualFunc[T]
}

// Option configures a Var, a published Signal, or a Flatten. The only option today is WithEqual; it is a slice-of-functions
// shape rather than a struct so new options can be added later without
// breaking every call site.
type Option[T any] func(*config[T])

// WithEqual overrides the equality contract for one node.
func WithEqual[T any](eq EqualFunc[T]) Option[T] {
	return func(c *config[T]) { c.equal = eq }
}

func resolveEqual[T any](opts []Option[T]) EqualFunc[T] {
	var c config[T]
	for _, opt := range opts {
		opt(&c)
	}
	return c.equal
}

func wrapEqual[T any](eq EqualFunc[T]) graph.Equal {
	if eq == nil {
		return nil
	}
	return func(a, b any) bool { return eq(a.(T), b.(T)) }
}

// ByIdentity compares two values by reference identity rather than by
// value, for the Map/Compute/Var cases where T is a pointer, slice, map,
// channel, or func and value equality either panics or is too expensive
// to want on every tick. It is this library's stand-in for the original
// system's explicit reference-signal specialization.
func ByIdentity[T any](a, b T) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch av.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		return av.Pointer() == bv.Pointer()
	default:
		return defaultEqual(a, b)
	}
}

func defaultEqual[T any](a, b T) (eq bool) {
	defer func() { recover() }()
	return any(a) == any(b)
}
