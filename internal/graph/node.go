package graph

// Node is implemented by every kind of reactive graph node (var, computed,
// flatten, observer): it has topology bookkeeping (base) and the ability to
// recompute itself when the scheduler reaches it (tick).
type Node interface {
	base() *nodeBase
	tick()
}

// nodeBase carries the fields every node needs: its current topological
// level, the tentative level discovered mid-wave, the at-most-once-per-wave
// queued flag, and the list of successors that consume this node's output.
// Concrete node kinds embed it.
//
// successors holds plain Go pointers, strong as far as the garbage
// collector is concerned; the consuming direction that keeps producers
// alive runs the other way, through an Operation's dependency tuple (or a
// flatten node's explicit outer/inner fields).
type nodeBase struct {
	graph *Graph

	level    int
	newLevel int
	queued   bool

	successors []Node
}

func (n *nodeBase) base() *nodeBase { return n }

func (n *nodeBase) addSuccessor(s Node) {
	n.successors = append(n.successors, s)
}

func (n *nodeBase) removeSuccessor(s Node) {
	for i, succ := range n.successors {
		if succ == s {
			n.successors = append(n.successors[:i], n.successors[i+1:]...)
			return
		}
	}
}

// ObserverHandle is the pair of operations the subject-side Observable
// needs to perform on an observer it owns: ask it to remove itself from
// the subject (unregisterSelf, used for both explicit Detach and deferred
// self-detach), and tell it its back-link to the subject is gone
// (detachObserver, called once unregisterSelf has found it).
type ObserverHandle interface {
	unregisterSelf()
	detachObserver()
}

// observable owns the list of observers currently attached to a node,
// which is also how Steal (in the root package) tells whether a Computed
// node is still safe to fold into a larger fused expression.
type observable struct {
	observers []ObserverHandle
}

func (o *observable) register(h ObserverHandle) {
	o.observers = append(o.observers, h)
}

// unregister does a linear scan, detaches the found observer, then erases
// it.
func (o *observable) unregister(h ObserverHandle) {
	for i, obs := range o.observers {
		if obs == h {
			obs.detachObserver()
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}
