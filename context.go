package reactor

import (
	"github.com/petermattis/goid"

	"github.com/netreact/reactor/internal/graph"
)

// Context owns one reactive graph. It is not safe for concurrent use from
// more than one goroutine — every exported method asserts it is being
// called from the same goroutine that constructed it. A reactive graph is
// cheap enough, and its invariants subtle enough, that the right answer
// for concurrent access is a second Context plus your own synchronization
// at the boundary, not locks threaded through every node.
type Context struct {
	g           *graph.Graph
	creatorGoid int64
}

// NewContext constructs a Context bound to the calling goroutine.
func NewContext() *Context {
	return &Context{g: graph.NewGraph(), creatorGoid: goid.Get()}
}

func (c *Context) assertAffinity() {
	if got := goid.Get(); got != c.creatorGoid {
		panic(&ContractViolation{
			Kind: CrossContext,
			Msg:  "reactor.Context used from a goroutine other than the one that created it",
		})
	}
}

// Transaction batches every Var.Set and Var.Modify call made inside fn
// into a single propagation wave. Nested transactions flatten into the
// outermost one.
func (c *Context) Transaction(fn func()) {
	c.assertAffinity()
	c.g.Transaction(fn)
}
