package reactor

import "github.com/netreact/reactor/internal/graph"

// Flatten publishes a signal that tracks whatever signal outer currently
// names, re-wiring itself whenever outer switches to naming a different
// one. This is how a dynamic, runtime-chosen dependency enters an
// otherwise static graph — the flatten node is the one node kind in this
// library whose dependency edges change after construction.
func Flatten[T any](ctx *Context, outer Signal[Signal[T]], opts ...Option[T]) Signal[T] {
	ctx.assertAffinity()
	outer.checkLive()
	eq := resolveEqual(opts)

	unwrap := func(v any) graph.Node {
		return v.(Signal[T]).node
	}

	fn := ctx.g.NewFlatten(outer.node, unwrap, wrapEqual(eq))
	return newSignal[T](ctx, fn, &fn.SignalNode)
}
