package reactor

import "github.com/netreact/reactor/internal/graph"

// ContractViolation is panicked for every programmer-error case this
// library detects: composing nodes from two different Contexts, ticking a
// node whose operation was stolen, detaching an observer twice, mutating
// any var while a propagation wave is still ticking, and reading a
// zero-value handle. None of these are meant to be recovered from in
// normal operation; they exist to fail loudly at the mistake's source
// instead of corrupting graph state silently.
type ContractViolation = graph.Violation

// ViolationKind distinguishes the ContractViolation cases above.
type ViolationKind = graph.ViolationKind

const (
	CrossContext      = graph.CrossContext
	StolenNodeTicked  = graph.StolenNodeTicked
	DoubleDetach      = graph.DoubleDetach
	ReentrantMutation = graph.ReentrantMutation
	InputNodeTicked   = graph.InputNodeTicked
	DisposedHandle    = graph.DisposedHandle
	InternalInvariant = graph.InternalInvariant
)
