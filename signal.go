package reactor

import "github.com/netreact/reactor/internal/graph"

// Signal is a published, typed handle onto a node in the reactive graph:
// a Var, a published Computed (via Expr.Signal, Compute1/Compute2/Compute3),
// or a Flatten result. Its zero value is a disposed handle — every method
// on it panics with DisposedHandle rather than reading through a nil
// pointer, so a forgotten assignment fails at the call site instead of
// somewhere downstream.
type Signal[T any] struct {
	ctx  *Context
	node graph.Node
	base *graph.SignalNode
}

func newSignal[T any](ctx *Context, node graph.Node, base *graph.SignalNode) Signal[T] {
	return Signal[T]{ctx: ctx, node: node, base: base}
}

// Value reads the signal's current value. Outside of an Observe callback
// or a Map/Compute function, this is a point-in-time read: nothing about
// calling Value subscribes the caller to future changes.
func (s Signal[T]) Value() T {
	s.checkLive()
	return s.base.Value().(T)
}

func (s Signal[T]) checkLive() {
	if s.node == nil {
		panic(&ContractViolation{Kind: DisposedHandle, Msg: "zero-value Signal used before assignment"})
	}
}

// dep implements Term[T]: a Signal is always a leaf dependency, since by
// the time one exists its node has already been published.
func (s Signal[T]) dep() any {
	s.checkLive()
	return s.node
}
