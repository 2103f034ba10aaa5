package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intEqual(a, b any) bool { return a.(int) == b.(int) }

func TestVarSetPropagatesThroughDiamond(t *testing.T) {
	g := NewGraph()

	src := g.NewVar(1, intEqual)

	double := g.NewComputed(NewOperation(func(args []any) any {
		return args[0].(int) * 2
	}, src), intEqual)

	triple := g.NewComputed(NewOperation(func(args []any) any {
		return args[0].(int) * 3
	}, src), intEqual)

	var sum int
	g.NewComputed(NewOperation(func(args []any) any {
		sum = args[0].(int) + args[1].(int)
		return sum
	}, double, triple), intEqual)

	assert.Equal(t, 5, sum)

	g.RequestSet(src, 10)
	assert.Equal(t, 50, sum)
}

func TestTransactionBatchesPropagation(t *testing.T) {
	g := NewGraph()
	a := g.NewVar(1, intEqual)
	b := g.NewVar(2, intEqual)

	ticks := 0
	sumNode := g.NewComputed(NewOperation(func(args []any) any {
		ticks++
		return args[0].(int) + args[1].(int)
	}, a, b), intEqual)

	require.Equal(t, 3, sumNode.Value())
	ticks = 0 // discount the construction-time evaluate

	g.Transaction(func() {
		g.RequestSet(a, 10)
		g.RequestSet(b, 20)
	})

	assert.Equal(t, 1, ticks, "both var updates in one transaction must cause exactly one re-evaluation")
	assert.Equal(t, 30, sumNode.Value())
}

func TestSetThenModifyInSameWaveFoldsOntoStagedSet(t *testing.T) {
	g := NewGraph()
	src := g.NewVar(1, intEqual)

	g.Transaction(func() {
		g.RequestSet(src, 5)
		g.RequestModify(src, func(v any) any { return v.(int) + 1 })
	})

	assert.Equal(t, 6, src.Value())
}

func TestModifyThenSetInSameWaveDiscardsModify(t *testing.T) {
	g := NewGraph()
	src := g.NewVar(1, intEqual)

	g.Transaction(func() {
		g.RequestModify(src, func(v any) any { return v.(int) + 1 })
		g.RequestSet(src, 5)
	})

	assert.Equal(t, 5, src.Value())
}

func TestEqualityGateSuppressesDownstreamTick(t *testing.T) {
	g := NewGraph()
	src := g.NewVar(1, intEqual)

	parity := g.NewComputed(NewOperation(func(args []any) any {
		return args[0].(int) % 2
	}, src), intEqual)

	downstreamTicks := 0
	g.NewComputed(NewOperation(func(args []any) any {
		downstreamTicks++
		return args[0]
	}, parity), intEqual)

	downstreamTicks = 0

	g.RequestSet(src, 3) // 1 -> 3: parity stays 1, no change should propagate
	assert.Equal(t, 0, downstreamTicks)

	g.RequestSet(src, 4) // 3 -> 4: parity flips to 0
	assert.Equal(t, 1, downstreamTicks)
}

func TestFusedOperationSkipsIntermediateNode(t *testing.T) {
	g := NewGraph()
	a := g.NewVar(2, intEqual)
	b := g.NewVar(3, intEqual)

	sumOp := NewOperation(func(args []any) any {
		return args[0].(int) + args[1].(int)
	}, a, b)

	scaled := g.NewComputed(NewOperation(func(args []any) any {
		return args[0].(int) * 10
	}, sumOp), intEqual)

	assert.Equal(t, 50, scaled.Value())

	g.RequestSet(a, 5)
	assert.Equal(t, 80, scaled.Value())

	// the fused sum never got its own node, so a still has exactly one
	// successor: the node that consumed the fused expression.
	assert.Len(t, a.successors, 1)
	assert.Equal(t, Node(scaled), a.successors[0])
}

func TestStealOpRelocatesOperationIntoNewNode(t *testing.T) {
	g := NewGraph()
	src := g.NewVar(1, intEqual)

	doubled := g.NewComputed(NewOperation(func(args []any) any {
		return args[0].(int) * 2
	}, src), intEqual)

	op := StealOp(doubled)

	tripled := g.NewComputed(NewOperation(func(args []any) any {
		return args[0].(int)
	}, op), intEqual)

	assert.Equal(t, 2, tripled.Value())

	g.RequestSet(src, 5)
	assert.Equal(t, 10, tripled.Value())

	assert.Panics(t, func() { doubled.tick() }, "a stolen node must never be scheduled again")
}

func TestFlattenFollowsSwitchedInnerSignal(t *testing.T) {
	g := NewGraph()

	innerA := g.NewVar(1, intEqual)
	innerB := g.NewVar(100, intEqual)
	selector := g.NewVar(Node(innerA), nil)

	flat := g.NewFlatten(selector, func(v any) Node { return v.(Node) }, intEqual)
	assert.Equal(t, 1, flat.Value())

	g.RequestSet(innerA, 2)
	assert.Equal(t, 2, flat.Value())

	g.RequestSet(selector, Node(innerB))
	assert.Equal(t, 100, flat.Value())

	// innerA no longer feeds the flatten node: changing it must not tick it.
	prev := flat.Value()
	g.RequestSet(innerA, 999)
	assert.Equal(t, prev, flat.Value())

	g.RequestSet(innerB, 200)
	assert.Equal(t, 200, flat.Value())
}

// TestFlattenRewireNeverPublishesStaleInnerValueSameWave covers a rewire
// onto an inner dependency at or deeper than the flatten node's own
// pre-rewire level, switched in the same transaction as a mutation to that
// inner's own upstream. If the flatten node's tick read the new inner's
// value in the same pass that performed the rewire, it could observe the
// inner's pre-tick value instead of the one that mutation produces.
func TestFlattenRewireNeverPublishesStaleInnerValueSameWave(t *testing.T) {
	g := NewGraph()

	innerA := g.NewVar(1, intEqual)
	selector := g.NewVar(Node(innerA), nil)
	flat := g.NewFlatten(selector, func(v any) Node { return v.(Node) }, intEqual)
	require.Equal(t, 1, flat.Value())

	srcB := g.NewVar(10, intEqual)
	inner2 := g.NewComputed(NewOperation(func(args []any) any {
		return args[0].(int)
	}, srcB), intEqual)
	require.Equal(t, flat.level, inner2.level, "inner2 must sit at or deeper than flat's pre-rewire level to exercise the ordering hazard")

	g.Transaction(func() {
		g.RequestSet(selector, Node(inner2))
		g.RequestSet(srcB, 999)
	})

	assert.Equal(t, 999, flat.Value())
}

func TestObserverSeesEachChange(t *testing.T) {
	g := NewGraph()
	src := g.NewVar(1, intEqual)

	var seen []int
	g.NewObserver(&src.SignalNode, func(v any) ObserverAction {
		seen = append(seen, v.(int))
		return ObserverContinue
	})

	g.RequestSet(src, 2)
	g.RequestSet(src, 3)

	assert.Equal(t, []int{2, 3}, seen)
}

func TestObserverStopAndDetachStopsAtWaveEnd(t *testing.T) {
	g := NewGraph()
	src := g.NewVar(1, intEqual)

	calls := 0
	obs := g.NewObserver(&src.SignalNode, func(v any) ObserverAction {
		calls++
		return ObserverStopAndDetach
	})

	g.RequestSet(src, 2)
	assert.Equal(t, 1, calls)
	assert.True(t, obs.detached)

	g.RequestSet(src, 3)
	assert.Equal(t, 1, calls, "a self-detached observer must not see later changes")
}

func TestObserverDetachIsImmediateAndRejectsDoubleCall(t *testing.T) {
	g := NewGraph()
	src := g.NewVar(1, intEqual)

	calls := 0
	obs := g.NewObserver(&src.SignalNode, func(v any) ObserverAction {
		calls++
		return ObserverContinue
	})

	obs.Detach()
	assert.True(t, obs.detached)

	g.RequestSet(src, 2)
	assert.Equal(t, 0, calls)

	assert.Equal(t, &Violation{Kind: DoubleDetach, Msg: "observer detached twice"}, func() (r any) {
		defer func() { r = recover() }()
		obs.Detach()
		return nil
	}())
}

func TestReentrantMutationDuringTickPanics(t *testing.T) {
	g := NewGraph()
	a := g.NewVar(1, intEqual)
	b := g.NewVar(2, intEqual)

	// the construction-time evaluate is not a tick; only check once a wave runs
	ticking := false
	g.NewComputed(NewOperation(func(args []any) any {
		defer func() { recover() }()
		if ticking {
			assert.Panics(t, func() { g.RequestSet(b, 99) })
		}
		return args[0]
	}, a), intEqual)

	ticking = true
	g.RequestSet(a, 2)
}

func TestCrossContextCompositionPanics(t *testing.T) {
	g1 := NewGraph()
	g2 := NewGraph()

	a := g1.NewVar(1, intEqual)

	assert.Equal(t, &Violation{Kind: CrossContext, Msg: "dependency belongs to a different reactive context"}, func() (r any) {
		defer func() { r = recover() }()
		g2.NewComputed(NewOperation(func(args []any) any { return args[0] }, a), intEqual)
		return nil
	}())
}
