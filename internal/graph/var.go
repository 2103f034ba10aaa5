package graph

// VarNode is a signal with no dependencies whose value is changed from
// outside the graph rather than computed from inside it. A set-then-modify
// chain in the same wave stays on the set path: a modify staged after a set
// folds onto the staged value instead of the live one, and a set staged
// after a modify discards the modify outright.
type VarNode struct {
	SignalNode

	hasNewValue bool
	hasModify   bool
	newValue    any
	modifyFn    func(any) any

	staged bool // already on the graph's touched-vars list this wave
}

func newVarNode(g *Graph, initial any, equal Equal) *VarNode {
	sn := makeSignalNode(g, initial, equal)
	return &VarNode{SignalNode: sn}
}

func (v *VarNode) tick() {
	violate(InputNodeTicked, "var node reached tick(); vars are applied, never scheduled")
}

// stageSet records a pending assignment, replacing any earlier set or
// modify staged in the same wave outright.
func (v *VarNode) stageSet(newValue any) {
	v.hasNewValue = true
	v.newValue = newValue
	v.hasModify = false
	v.modifyFn = nil
}

// stageModify records a pending in-place update. If a set is already
// staged this wave, the modify folds onto that staged value immediately
// rather than being discarded, keeping a set-then-modify chain on the set
// path the way a modify-then-set chain collapses onto the set in stageSet.
func (v *VarNode) stageModify(fn func(any) any) {
	if v.hasNewValue {
		v.newValue = fn(v.newValue)
		return
	}
	v.hasModify = true
	v.modifyFn = fn
}

// apply resolves whichever of set or modify is pending into the node's
// committed value, gated by equal, and reports whether the value actually
// changed so the caller can decide whether to seed propagation from this
// node.
func (v *VarNode) apply() bool {
	var next any
	switch {
	case v.hasNewValue:
		next = v.newValue
	case v.hasModify:
		next = v.modifyFn(v.value)
	default:
		return false
	}

	v.hasNewValue = false
	v.hasModify = false
	v.newValue = nil
	v.modifyFn = nil

	if v.equal(v.value, next) {
		return false
	}
	v.value = next
	return true
}
