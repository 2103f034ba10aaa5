package graph

// Graph owns transaction batching and the level-based topological
// scheduler. One Graph belongs to exactly one reactor.Context; every node
// constructor checks that the nodes it is handed belong to the same Graph
// and panics CrossContext otherwise.
type Graph struct {
	depth int // transaction nesting depth; propagate fires only back at 0

	touchedVars []*VarNode
	queue       topoQueue

	pendingDetach []*ObserverNode

	processing bool // true while draining the queue; gates ReentrantMutation
}

func NewGraph() *Graph {
	return &Graph{}
}

// Transaction is the transaction boundary: every RequestSet and
// RequestModify issued by fn is staged, and propagation runs exactly once
// after fn returns, when the nesting depth returns to zero. Nested
// transactions flatten into the outermost one rather than propagating at
// every level.
func (g *Graph) Transaction(fn func()) {
	g.depth++
	defer func() {
		g.depth--
		if g.depth == 0 {
			g.propagate()
		}
	}()
	fn()
}

// RequestSet stages an assignment on v. Outside an explicit Transaction
// this is itself a one-node transaction: the new value propagates before
// RequestSet returns.
func (g *Graph) RequestSet(v *VarNode, newValue any) {
	g.assertNotProcessing()
	v.stageSet(newValue)
	g.touch(v)
	if g.depth == 0 {
		g.propagate()
	}
}

// RequestModify is RequestSet's in-place counterpart; see VarNode.apply
// for the has_set-dominates-has_modify precedence this feeds.
func (g *Graph) RequestModify(v *VarNode, fn func(any) any) {
	g.assertNotProcessing()
	v.stageModify(fn)
	g.touch(v)
	if g.depth == 0 {
		g.propagate()
	}
}

func (g *Graph) assertNotProcessing() {
	if g.processing {
		violate(ReentrantMutation, "var mutated from inside a tick still in flight; wrap in Transaction or defer the mutation")
	}
}

func (g *Graph) touch(v *VarNode) {
	if v.staged {
		return
	}
	v.staged = true
	g.touchedVars = append(g.touchedVars, v)
}

// propagate applies every staged input, seeds the queue from whichever
// inputs actually changed value, then drains level by level until the
// queue is empty, and finally lets any observer that asked to self-detach
// during the wave actually go.
func (g *Graph) propagate() {
	changed := g.applyInputs()
	if len(changed) == 0 {
		return
	}
	for _, v := range changed {
		g.invalidateSuccessors(v)
	}

	g.processing = true
	g.runQueue()
	g.processing = false

	g.detachQueuedObservers()
}

func (g *Graph) applyInputs() []*VarNode {
	vars := g.touchedVars
	g.touchedVars = nil

	var changed []*VarNode
	for _, v := range vars {
		v.staged = false
		if v.apply() {
			changed = append(changed, v)
		}
	}
	return changed
}

func (g *Graph) runQueue() {
	for !g.queue.empty() {
		batch := g.queue.fetchNext()
		for _, n := range batch {
			nb := n.base()
			nb.queued = false
			if nb.level < nb.newLevel {
				nb.level = nb.newLevel
				nb.queued = true
				g.queue.push(n)
				continue
			}
			n.tick()
		}
	}
}

// invalidateSuccessors pushes every not-already-queued successor of n onto
// the scheduler. The queued flag is what collapses a diamond dependency
// back down to a single visit of the shared descendant per wave.
func (g *Graph) invalidateSuccessors(n Node) {
	for _, s := range n.base().successors {
		sb := s.base()
		if !sb.queued {
			sb.queued = true
			g.queue.push(s)
		}
	}
}

// onDynamicNodeAttach handles the case where a flatten node just rewired
// onto a new inner dependency. The level floor is n's own current level
// (rather than only the new dependency's level), and n is queued for
// another pass even when the new dependency isn't deep enough to force an
// actual level increase: the rewiring tick that called this deferred
// reading the dependency's value, and that reconciliation pass is what
// lets n read it instead of a tick that hasn't happened yet.
func (g *Graph) onDynamicNodeAttach(n Node, newDep Node) {
	required := newDep.base().level + 1
	if required < n.base().level {
		required = n.base().level
	}
	g.bumpLevel(n, required)
	if nb := n.base(); !nb.queued {
		nb.queued = true
		g.queue.push(n)
	}
}

// onDynamicNodeDetach is deliberately a no-op: a level can only need to
// grow when a node gains a deeper dependency, never shrink when it loses
// one, since another still-attached dependency may be just as deep. Left
// stale, a level only costs an occasional redundant wave slot, never a
// correctness violation.
func (g *Graph) onDynamicNodeDetach(n Node, oldDep Node) {}

// bumpLevel raises n's tentative newLevel and, if n is not already sitting
// in the queue waiting to be reconciled, pushes it there. It then cascades
// the same tentative bump into any successor that is not already
// guaranteed to sit deeper, so the whole downstream run that depends on n
// gets reconciled to a consistent level before any of it ticks again.
func (g *Graph) bumpLevel(n Node, newLevel int) {
	nb := n.base()
	if newLevel <= nb.newLevel && newLevel <= nb.level {
		return
	}
	if newLevel > nb.newLevel {
		nb.newLevel = newLevel
	}
	if !nb.queued {
		nb.queued = true
		g.queue.push(n)
	}
	for _, s := range nb.successors {
		sb := s.base()
		if sb.level <= newLevel && sb.newLevel <= newLevel {
			g.bumpLevel(s, newLevel+1)
		}
	}
}

// queueObserverForDetach defers an observer's self-detach to the end of
// the current wave — never mid-propagation, since the subject's observer
// list may still be iterated elsewhere during tick.
func (g *Graph) queueObserverForDetach(o *ObserverNode) {
	g.pendingDetach = append(g.pendingDetach, o)
}

func (g *Graph) detachQueuedObservers() {
	pending := g.pendingDetach
	g.pendingDetach = nil
	for _, o := range pending {
		o.unregisterSelf()
	}
}

// NewVar, NewComputed and NewFlatten publish the respective node kinds
// into this graph. They are the graph package's half of the build/publish
// split; the generic root package wraps each in a typed handle.
func (g *Graph) NewVar(initial any, equal Equal) *VarNode {
	return newVarNode(g, initial, equal)
}

func (g *Graph) NewComputed(op *Operation, equal Equal) *ComputedNode {
	return newComputedNode(g, op, equal)
}

func (g *Graph) NewFlatten(outer Node, unwrap func(any) Node, equal Equal) *FlattenNode {
	return newFlattenNode(g, outer, unwrap, equal)
}

func (g *Graph) NewObserver(subject *SignalNode, action func(any) ObserverAction) *ObserverNode {
	return newObserverNode(g, subject, action)
}

// NewOperation builds an Operation from a slice of dependencies that are
// each either a Node (a leaf, already-published dependency) or an
// *Operation (an unpublished, fused sub-expression being folded in).
// Accepting bare any here, rather than the package-private depSource
// directly, is what lets the root generic package build operations
// without needing to name an unexported type.
func NewOperation(fn func([]any) any, deps ...any) *Operation {
	ds := make([]depSource, len(deps))
	for i, d := range deps {
		switch v := d.(type) {
		case Node:
			ds[i] = signalDep{node: v}
		case *Operation:
			ds[i] = opDep{op: v}
		default:
			violate(InternalInvariant, "operation dependency must be a Node or *Operation")
		}
	}
	return newOperation(fn, ds...)
}

// StealOp extracts the Operation from a not-yet-externally-observed
// Computed node so a caller building a larger fused expression can fold
// it in directly. The donor node becomes inert; see ComputedNode.stealOp.
func StealOp(c *ComputedNode) *Operation { return c.stealOp() }
