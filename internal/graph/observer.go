package graph

import "weak"

// ObserverAction is what an observer's callback reports back after seeing
// a new value: keep watching, or ask to be torn down ("self-detach"). A
// self-detach takes effect at the end of the current wave, not
// mid-propagation; the graph only acts on it once the whole wave's pulse
// has finished.
type ObserverAction int

const (
	ObserverContinue ObserverAction = iota
	ObserverStopAndDetach
)

// ObserverNode's reference to the subject it watches is a weak.Pointer
// rather than a plain Node, per the discipline recorded in DESIGN.md: an
// observer must never be the reason a subject stays reachable, since
// Observe's whole point is to let callers attach side effects without
// taking ownership of the graph they are watching. Every other edge in
// this engine (successor lists, Operation dependency tuples) is a plain
// strong Go pointer instead — this is the one non-owning edge, so it is
// the one place that earns the extra ceremony.
type ObserverNode struct {
	nodeBase

	subject weak.Pointer[SignalNode]
	action  func(any) ObserverAction

	detached      bool
	detachQueued  bool
}

func newObserverNode(g *Graph, subject *SignalNode, action func(any) ObserverAction) *ObserverNode {
	if subject.graph != g {
		violate(CrossContext, "observer subject belongs to a different reactive context")
	}
	o := &ObserverNode{
		nodeBase: nodeBase{graph: g, level: subject.level + 1},
		subject:  weak.Make(subject),
		action:   action,
	}
	subject.register(o)
	subject.addSuccessor(o)
	return o
}

// tick reads the subject through the weak reference, invokes the
// callback, and if either the subject is gone or the callback asked to
// stop, queues self-detach for wave end.
func (o *ObserverNode) tick() {
	if o.detached {
		return
	}
	subj := o.subject.Value()
	if subj == nil {
		o.queueSelfDetach()
		return
	}
	if o.action(subj.Value()) == ObserverStopAndDetach {
		o.queueSelfDetach()
	}
}

func (o *ObserverNode) queueSelfDetach() {
	if o.detachQueued {
		return
	}
	o.detachQueued = true
	o.graph.queueObserverForDetach(o)
}

// unregisterSelf is called by the graph at wave end for a queued
// self-detach, or by an explicit Detach. It removes this observer from the
// subject's observer list (which detaches it) if the subject is still
// alive, and otherwise detaches it directly.
func (o *ObserverNode) unregisterSelf() {
	if subj := o.subject.Value(); subj != nil {
		subj.unregister(o)
		subj.removeSuccessor(o)
		return
	}
	o.detachObserver()
}

// detachObserver marks the observer inert. Called by the subject right
// before dropping its reference, or by unregisterSelf once the subject
// has already done so — either way it is safe to call twice, unlike a
// caller-initiated Detach, which is a DoubleDetach violation on repeat.
func (o *ObserverNode) detachObserver() {
	o.detached = true
}

// Detach is the user-initiated, immediate counterpart to self-detach: it
// takes effect synchronously, unregistering directly rather than going
// through the scheduler and waiting for wave end.
func (o *ObserverNode) Detach() {
	if o.detached {
		violate(DoubleDetach, "observer detached twice")
	}
	o.unregisterSelf()
}
