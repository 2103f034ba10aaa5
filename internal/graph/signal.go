package graph

// Equal is the equality contract: the gate that turns a re-evaluation into
// a propagation event. A nil Equal falls back to defaultEqual.
type Equal func(a, b any) bool

func defaultEqual(a, b any) bool {
	defer func() { recover() }() // comparing an uncomparable dynamic type: never equal
	return a == b
}

// SignalNode is a node that carries a typed (here, boxed) current value.
// Var, Computed and Flatten nodes all embed it — it is never used bare as
// a live graph participant, which is why its own tick just panics.
type SignalNode struct {
	nodeBase
	observable

	value any
	equal Equal
}

func makeSignalNode(g *Graph, initial any, equal Equal) SignalNode {
	if equal == nil {
		equal = defaultEqual
	}
	return SignalNode{
		nodeBase: nodeBase{graph: g},
		value:    initial,
		equal:    equal,
	}
}

// Value returns the node's current value. There is no mutation surface
// here — mutation is the province of VarNode (apply) and
// ComputedNode/FlattenNode (tick).
func (s *SignalNode) Value() any { return s.value }

// HasObservers reports whether anything is currently watching this node.
// Used by the root package to decide whether a published Computed node's
// Operation is still safe to steal back out for fusion into a larger
// expression — an observed node must keep ticking under its own identity,
// so stealing is refused once it has a watcher.
func (s *SignalNode) HasObservers() bool { return len(s.observers) > 0 }

func (s *SignalNode) tick() {
	violate(InternalInvariant, "bare signal node ticked; only var, computed and flatten nodes are schedulable")
}
