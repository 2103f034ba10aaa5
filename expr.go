package reactor

import "github.com/netreact/reactor/internal/graph"

// Term is satisfied by anything that can feed a Map/Compute expression: a
// published Signal (a leaf dependency) or an unpublished Expr (a fused
// sub-expression). The interface's single method is unexported on
// purpose — the original system's templates could accept any expression
// type because the compiler stitched the right code together at each call
// site; Go generics need a concrete, closed type set to do the same job,
// so only this package's own two implementations may ever satisfy Term.
type Term[T any] interface {
	dep() any
}

// Expr is an unpublished expression: the "build" half of the
// build-vs-publish split. It owns an evaluation rule and a dependency
// list but has no node of its own yet, and so no identity, no successors,
// and nothing watching it — Map1/Map2/Map3 build one, Signal publishes it.
//
// This is also the escape hatch operation fusion runs through: an Expr
// built from another Expr embeds that sub-expression's evaluation inline
// rather than giving it an intermediate node, exactly as Steal does in
// reverse for an already-published Signal.
type Expr[T any] struct {
	op *graph.Operation
}

func (e Expr[T]) dep() any { return e.op }

// Signal publishes this expression as a Computed node in ctx.
func (e Expr[T]) Signal(ctx *Context, opts ...Option[T]) Signal[T] {
	ctx.assertAffinity()
	eq := resolveEqual(opts)
	cn := ctx.g.NewComputed(e.op, wrapEqual(eq))
	return newSignal[T](ctx, cn, &cn.SignalNode)
}

// Map1 builds a one-dependency expression. It does not touch any Context
// and does not allocate a graph node.
func Map1[A, T any](a Term[A], fn func(A) T) Expr[T] {
	op := graph.NewOperation(func(args []any) any {
		return fn(args[0].(A))
	}, a.dep())
	return Expr[T]{op: op}
}

// Map2 builds a two-dependency expression.
func Map2[A, B, T any](a Term[A], b Term[B], fn func(A, B) T) Expr[T] {
	op := graph.NewOperation(func(args []any) any {
		return fn(args[0].(A), args[1].(B))
	}, a.dep(), b.dep())
	return Expr[T]{op: op}
}

// Map3 builds a three-dependency expression.
func Map3[A, B, C, T any](a Term[A], b Term[B], c Term[C], fn func(A, B, C) T) Expr[T] {
	op := graph.NewOperation(func(args []any) any {
		return fn(args[0].(A), args[1].(B), args[2].(C))
	}, a.dep(), b.dep(), c.dep())
	return Expr[T]{op: op}
}

// Compute1 builds and immediately publishes a one-dependency signal.
func Compute1[A, T any](ctx *Context, a Term[A], fn func(A) T, opts ...Option[T]) Signal[T] {
	return Map1(a, fn).Signal(ctx, opts...)
}

// Compute2 builds and immediately publishes a two-dependency signal.
func Compute2[A, B, T any](ctx *Context, a Term[A], b Term[B], fn func(A, B) T, opts ...Option[T]) Signal[T] {
	return Map2(a, b, fn).Signal(ctx, opts...)
}

// Compute3 builds and immediately publishes a three-dependency signal.
func Compute3[A, B, C, T any](ctx *Context, a Term[A], b Term[B], c Term[C], fn func(A, B, C) T, opts ...Option[T]) Signal[T] {
	return Map3(a, b, c, fn).Signal(ctx, opts...)
}

// Steal reclaims a published Signal's Operation for folding into a larger
// fused Expr, provided that signal is backed by a Computed node (not a
// Var or a Flatten) and nothing observes it yet. Stealing an observed or
// non-Computed signal would either orphan a live watcher or have no
// operation to take in the first place, so both report ok=false rather
// than a ContractViolation — unlike ticking an already-stolen node, which
// is a genuine programmer bug, declining to steal here is just "no."
func Steal[T any](s Signal[T]) (Expr[T], bool) {
	s.checkLive()
	cn, ok := s.node.(*graph.ComputedNode)
	if !ok || cn.HasObservers() {
		return Expr[T]{}, false
	}
	return Expr[T]{op: graph.StealOp(cn)}, true
}
