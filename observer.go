package reactor

import "github.com/netreact/reactor/internal/graph"

// ObserverAction is what an Observe callback returns after seeing a new
// value: keep watching, or ask to be torn down. A self-detach takes
// effect at the end of the current propagation wave, never mid-wave.
type ObserverAction = graph.ObserverAction

const (
	ObserverContinue      = graph.ObserverContinue
	ObserverStopAndDetach = graph.ObserverStopAndDetach
)

// Observer is a handle to a registered side effect. Its zero value has
// no Context and nothing to detach, and calling Detach on it panics with a
// nil pointer dereference; calling Detach twice on the same non-zero
// Observer is a DoubleDetach violation.
type Observer struct {
	ctx  *Context
	node *graph.ObserverNode
}

// Observe attaches fn as a side effect on s: fn runs once for every value
// s settles on, starting with the next change after Observe is called
// (not the value s already holds at call time).
func Observe[T any](ctx *Context, s Signal[T], fn func(T) ObserverAction) Observer {
	ctx.assertAffinity()
	s.checkLive()
	on := ctx.g.NewObserver(s.base, func(v any) graph.ObserverAction {
		return fn(v.(T))
	})
	return Observer{ctx: ctx, node: on}
}

// ObserveExpr publishes e and immediately observes it, for when the
// caller wants a side effect on a derived value without ever needing a
// Signal handle to it. The published node stays alive exactly as long as
// its dependencies do — it is kept reachable by them, not by this
// Observer — so there is no extra lifetime cost to publishing it this way
// versus building the Signal yourself and discarding the handle.
func ObserveExpr[T any](ctx *Context, e Expr[T], fn func(T) ObserverAction) Observer {
	return Observe(ctx, e.Signal(ctx), fn)
}

// Detach immediately unregisters the observer, synchronously rather than
// waiting for a propagation wave. Calling it a second time on the same
// Observer is a DoubleDetach violation.
func (o Observer) Detach() {
	o.ctx.assertAffinity()
	o.node.Detach()
}
