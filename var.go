package reactor

import "github.com/netreact/reactor/internal/graph"

// Var is the graph's input node: a signal whose value changes only when
// something outside the graph calls Set or Modify on it.
type Var[T any] struct {
	Signal[T]
	varNode *graph.VarNode
}

// NewVar publishes a new Var holding initial.
func NewVar[T any](ctx *Context, initial T, opts ...Option[T]) Var[T] {
	ctx.assertAffinity()
	eq := resolveEqual(opts)
	vn := ctx.g.NewVar(initial, wrapEqual(eq))
	return Var[T]{
		Signal:  newSignal[T](ctx, vn, &vn.SignalNode),
		varNode: vn,
	}
}

// Set stages newValue and, if it is not equal to the current value under
// the var's equality contract, runs a propagation wave. Outside an
// explicit Transaction, Set is itself a one-var transaction.
func (v Var[T]) Set(newValue T) {
	v.ctx.assertAffinity()
	v.checkLive()
	v.ctx.g.RequestSet(v.varNode, newValue)
}

// Modify stages an in-place update computed from the var's current value.
// A Set on the same var staged earlier in the same transaction stays on
// the set path: this Modify folds onto that staged value instead of the
// var's live one. A Set staged later still replaces a pending Modify
// outright.
func (v Var[T]) Modify(fn func(T) T) {
	v.ctx.assertAffinity()
	v.checkLive()
	v.ctx.g.RequestModify(v.varNode, func(old any) any {
		return fn(old.(T))
	})
}
