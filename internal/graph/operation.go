package graph

// depSource is a single entry of an Operation's dependency list. Go has no
// template-style heterogeneous variadic, so a heterogeneous dependency
// tuple is represented as a slice of this interface instead — a vector of
// trait objects sharing one vtable. There are exactly two concrete kinds:
// signalDep, a leaf reference to a published Signal/Var/Computed/Flatten
// node, and opDep, a reference to another Operation that has not been
// published yet and is being folded (stolen) into this one.
type depSource interface {
	attach(sub Node)
	detach(sub Node)
	eval() any
	maxLevel() int
	checkGraph(g *Graph)
}

// signalDep is a leaf dependency: a plain reference to an already-published
// node. attach/detach register/unregister the consuming node as a
// successor so the scheduler's invalidate_successors reaches it.
type signalDep struct {
	node Node
}

func (d signalDep) attach(sub Node) { d.node.base().addSuccessor(sub) }
func (d signalDep) detach(sub Node) { d.node.base().removeSuccessor(sub) }
func (d signalDep) eval() any       { return valueOf(d.node) }
func (d signalDep) maxLevel() int   { return d.node.base().level }

func (d signalDep) checkGraph(g *Graph) {
	if d.node.base().graph != g {
		violate(CrossContext, "dependency belongs to a different reactive context")
	}
}

// opDep is a fused, unpublished sub-expression: an Operation that never
// got its own node and is instead evaluated inline by its parent. This is
// the mechanism behind operation fusion ("stealing"); an opDep holds the
// fused Operation by pointer since Go operations are always heap-allocated
// closures.
type opDep struct {
	op *Operation
}

func (d opDep) attach(sub Node) { d.op.attach(sub) }
func (d opDep) detach(sub Node) { d.op.detach(sub) }
func (d opDep) eval() any       { return d.op.evaluate() }
func (d opDep) maxLevel() int   { return d.op.maxLevel() }
func (d opDep) checkGraph(g *Graph) {
	for _, nested := range d.op.deps {
		nested.checkGraph(g)
	}
}

// Operation is the reusable evaluation core shared by a published
// ComputedNode and by any unpublished expression still being built up (the
// "build vs publish" split). fn receives the evaluated value of every
// entry in deps, in order.
type Operation struct {
	deps []depSource
	fn   func(args []any) any

	args []any // reused scratch buffer, avoids an alloc per evaluate()
}

func newOperation(fn func([]any) any, deps ...depSource) *Operation {
	return &Operation{deps: deps, fn: fn, args: make([]any, len(deps))}
}

func (op *Operation) attach(sub Node) {
	for _, d := range op.deps {
		d.attach(sub)
	}
}

func (op *Operation) detach(sub Node) {
	for _, d := range op.deps {
		d.detach(sub)
	}
}

func (op *Operation) evaluate() any {
	for i, d := range op.deps {
		op.args[i] = d.eval()
	}
	return op.fn(op.args)
}

// maxLevel is the deepest level among this operation's dependencies,
// descending through fused sub-expressions rather than stopping at them —
// a stolen opDep has no node or level of its own, so its contribution is
// whatever its own deps' deepest level is.
func (op *Operation) maxLevel() int {
	max := -1
	for _, d := range op.deps {
		if l := d.maxLevel(); l > max {
			max = l
		}
	}
	return max
}

// checkGraph panics with CrossContext if any dependency, however deeply
// fused, was built against a different Graph than the one about to
// publish a node over this operation.
func (op *Operation) checkGraph(g *Graph) {
	for _, d := range op.deps {
		d.checkGraph(g)
	}
}

// valueOf reads the boxed current value out of whichever concrete node
// kind sits behind a Node reference. Every node kind that can be a
// dependency embeds SignalNode, so this is a type switch rather than a
// Node method — tick() and base() are all Node needs to promise, and
// giving every kind a Value() just to satisfy an interface would leak the
// engine's internal node zoo into the Node contract for no benefit.
func valueOf(n Node) any {
	switch t := n.(type) {
	case *VarNode:
		return t.Value()
	case *ComputedNode:
		return t.Value()
	case *FlattenNode:
		return t.Value()
	default:
		violate(InternalInvariant, "valueOf called on a node kind with no boxed value")
		return nil
	}
}
