package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiamondDependencySeesOneConsistentUpdate(t *testing.T) {
	ctx := NewContext()
	src := NewVar(ctx, 2)

	double := Compute1(ctx, src, func(v int) int { return v * 2 })
	triple := Compute1(ctx, src, func(v int) int { return v * 3 })

	ticks := 0
	sum := Compute2(ctx, double, triple, func(a, b int) int {
		ticks++
		return a + b
	})

	require.Equal(t, 10, sum.Value())
	ticks = 0

	src.Set(5)
	assert.Equal(t, 25, sum.Value())
	assert.Equal(t, 1, ticks, "the shared descendant of a diamond must tick exactly once per wave")
}

func TestTransactionIsAtomic(t *testing.T) {
	ctx := NewContext()
	a := NewVar(ctx, 1)
	b := NewVar(ctx, 2)

	ticks := 0
	sum := Compute2(ctx, a, b, func(x, y int) int {
		ticks++
		return x + y
	})
	ticks = 0

	ctx.Transaction(func() {
		a.Set(10)
		b.Set(20)
	})

	assert.Equal(t, 1, ticks)
	assert.Equal(t, 30, sum.Value())
}

func TestEqualityGateSuppressesPropagation(t *testing.T) {
	ctx := NewContext()
	src := NewVar(ctx, 1)

	parity := Compute1(ctx, src, func(v int) int { return v % 2 })

	downstreamTicks := 0
	Observe(ctx, parity, func(v int) ObserverAction {
		downstreamTicks++
		return ObserverContinue
	})
	downstreamTicks = 0

	src.Set(3) // still odd: parity doesn't change, observer must not fire
	assert.Equal(t, 0, downstreamTicks)

	src.Set(4) // now even
	assert.Equal(t, 1, downstreamTicks)
}

func TestFlattenTracksDynamicallySelectedSignal(t *testing.T) {
	ctx := NewContext()

	a := NewVar(ctx, "a-value")
	b := NewVar(ctx, "b-value")
	selector := NewVar(ctx, a.Signal)

	flat := Flatten(ctx, selector.Signal)
	assert.Equal(t, "a-value", flat.Value())

	a.Set("a-updated")
	assert.Equal(t, "a-updated", flat.Value())

	selector.Set(b.Signal)
	assert.Equal(t, "b-value", flat.Value())

	a.Set("a-ignored-now")
	assert.Equal(t, "b-value", flat.Value())
}

func TestSelfDetachingObserverStopsAfterCurrentWave(t *testing.T) {
	ctx := NewContext()
	src := NewVar(ctx, 0)

	var seen []int
	Observe(ctx, src.Signal, func(v int) ObserverAction {
		seen = append(seen, v)
		if v >= 2 {
			return ObserverStopAndDetach
		}
		return ObserverContinue
	})

	src.Set(1)
	src.Set(2)
	src.Set(3)

	assert.Equal(t, []int{1, 2}, seen)
}

func TestSetThenModifyInOneTransactionFoldsOntoTheSet(t *testing.T) {
	ctx := NewContext()
	v := NewVar(ctx, 1)

	ctx.Transaction(func() {
		v.Set(5)
		v.Modify(func(x int) int { return x + 1 })
	})

	assert.Equal(t, 6, v.Value())
}

func TestFusedExpressionMatchesEquivalentPublishedChain(t *testing.T) {
	ctx := NewContext()
	a := NewVar(ctx, 3)
	b := NewVar(ctx, 4)

	fused := Compute1(ctx, Map2(a, b, func(x, y int) int { return x + y }), func(s int) int {
		return s * s
	})

	sum := Compute2(ctx, a, b, func(x, y int) int { return x + y })
	unfused := Compute1(ctx, sum, func(s int) int { return s * s })

	assert.Equal(t, unfused.Value(), fused.Value())

	a.Set(10)
	b.Set(20)

	assert.Equal(t, unfused.Value(), fused.Value())
	assert.Equal(t, 900, fused.Value())
}

func TestStealFoldsAnUnobservedComputedIntoALargerExpression(t *testing.T) {
	ctx := NewContext()
	a := NewVar(ctx, 2)

	doubled := Compute1(ctx, a, func(v int) int { return v * 2 })

	expr, ok := Steal(doubled)
	require.True(t, ok)

	quadrupled := Compute1(ctx, expr, func(v int) int { return v * 2 })
	assert.Equal(t, 8, quadrupled.Value())

	a.Set(5)
	assert.Equal(t, 20, quadrupled.Value())

	// doubled was detached from a as part of the steal, so later changes
	// to a never reach it again; it is left holding its last value.
	assert.Equal(t, 4, doubled.Value())
}

func TestStealRefusesAnObservedSignal(t *testing.T) {
	ctx := NewContext()
	a := NewVar(ctx, 1)
	doubled := Compute1(ctx, a, func(v int) int { return v * 2 })

	Observe(ctx, doubled, func(int) ObserverAction { return ObserverContinue })

	_, ok := Steal(doubled)
	assert.False(t, ok)
}

func TestDisposedHandlePanics(t *testing.T) {
	var s Signal[int]
	assert.Equal(t, &ContractViolation{Kind: DisposedHandle, Msg: "zero-value Signal used before assignment"}, func() (r any) {
		defer func() { r = recover() }()
		s.Value()
		return nil
	}())
}

func TestReentrantMutationPanics(t *testing.T) {
	ctx := NewContext()
	a := NewVar(ctx, 1)
	b := NewVar(ctx, 100)

	Observe(ctx, a.Signal, func(int) ObserverAction {
		assert.Panics(t, func() { b.Set(999) })
		return ObserverContinue
	})

	a.Set(2)
}
