package pruning_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/errs"
	"github.com/katalvlaran/gophylo/pruning"
)

// identityArena builds a two-tip, two-state arena with both transition
// matrices set to the identity (edge length zero), so that combining tip
// states through the pruning kernel reduces to a simple indicator product.
func identityArena(t *testing.T) *buffer.Arena {
	t.Helper()
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      2,
		StateCount:        2,
		PatternCount:      2,
		EigenCount:        0,
		MatrixCount:       2,
		RateCategoryCount: 1,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)

	identity := []float64{1, 0, 0, 1}
	require.NoError(t, arena.SetTransitionMatrix(0, 0, identity))
	require.NoError(t, arena.SetTransitionMatrix(1, 0, identity))

	require.NoError(t, arena.SetTipStates(0, []int32{0, 1}))
	require.NoError(t, arena.SetTipStates(1, []int32{0, 1}))
	return arena
}

func TestRun_StatesStatesMatchingTips(t *testing.T) {
	arena := identityArena(t)
	ops := []pruning.Operation{
		{Dest: 0, DestScaling: 0, Src1: 1, Src1Matrix: 0, Src2: 2, Src2Matrix: 1},
	}
	res := pruning.Run(arena, ops, true, pruning.ScalarOps{}, 0, nil, nil)
	require.Equal(t, 0, len(res.Errors))

	dest, err := arena.Partials(0)
	require.NoError(t, err)
	// pattern 0: both tips in state 0 -> dest = [1, 0]
	require.InDelta(t, 1.0, dest[0], 1e-12)
	require.InDelta(t, 0.0, dest[1], 1e-12)
	// pattern 1: both tips in state 1 -> dest = [0, 1]
	require.InDelta(t, 0.0, dest[2], 1e-12)
	require.InDelta(t, 1.0, dest[3], 1e-12)

	acc, err := arena.ScaleAccumulator(0)
	require.NoError(t, err)
	require.InDelta(t, 0.0, acc[0], 1e-12)
	require.InDelta(t, 0.0, acc[1], 1e-12)
}

func TestRun_StatesStatesMismatchedTipsIsZero(t *testing.T) {
	arena := identityArena(t)
	require.NoError(t, arena.SetTipStates(1, []int32{1, 0}))
	ops := []pruning.Operation{
		{Dest: 0, DestScaling: 0, Src1: 1, Src1Matrix: 0, Src2: 2, Src2Matrix: 1},
	}
	res := pruning.Run(arena, ops, false, pruning.ScalarOps{}, 0, nil, nil)
	require.Equal(t, 0, len(res.Errors))

	dest, err := arena.Partials(0)
	require.NoError(t, err)
	for _, v := range dest {
		require.InDelta(t, 0.0, v, 1e-12)
	}
}

// partialsPartialsArena wires a two-stage schedule: two tip pairs combine
// into two internal partials nodes, which then combine into a root node,
// exercising the partials-partials dispatch path.
func partialsPartialsArena(t *testing.T) (*buffer.Arena, []pruning.Operation) {
	t.Helper()
	spec := buffer.Spec{
		TipCount:          4,
		PartialsCount:     3,
		CompactCount:      4,
		StateCount:        2,
		PatternCount:      1,
		EigenCount:        0,
		MatrixCount:       4,
		RateCategoryCount: 1,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)

	identity := []float64{1, 0, 0, 1}
	for m := 0; m < 4; m++ {
		require.NoError(t, arena.SetTransitionMatrix(m, 0, identity))
	}
	require.NoError(t, arena.SetTipStates(0, []int32{0}))
	require.NoError(t, arena.SetTipStates(1, []int32{0}))
	require.NoError(t, arena.SetTipStates(2, []int32{0}))
	require.NoError(t, arena.SetTipStates(3, []int32{0}))

	ops := []pruning.Operation{
		{Dest: 0, DestScaling: 0, Src1: 3, Src1Matrix: 0, Src2: 4, Src2Matrix: 1},
		{Dest: 1, DestScaling: 1, Src1: 5, Src1Matrix: 2, Src2: 6, Src2Matrix: 3},
		{Dest: 2, DestScaling: 2, Src1: 0, Src1Matrix: 0, Src2: 1, Src2Matrix: 1},
	}
	return arena, ops
}

func TestRun_PartialsPartialsRootLikelihood(t *testing.T) {
	arena, ops := partialsPartialsArena(t)
	res := pruning.Run(arena, ops, true, pruning.ScalarOps{}, 0, nil, nil)
	require.Equal(t, 0, len(res.Errors))

	root, err := arena.Partials(2)
	require.NoError(t, err)
	require.InDelta(t, 1.0, root[0], 1e-12)
	require.InDelta(t, 0.0, root[1], 1e-12)
}

func TestRun_RescaleTracksLogAccumulator(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      2,
		StateCount:        2,
		PatternCount:      1,
		EigenCount:        0,
		MatrixCount:       2,
		RateCategoryCount: 1,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)

	tiny := 1e-200
	scaled := []float64{tiny, 0, 0, tiny}
	require.NoError(t, arena.SetTransitionMatrix(0, 0, scaled))
	require.NoError(t, arena.SetTransitionMatrix(1, 0, scaled))
	require.NoError(t, arena.SetTipStates(0, []int32{0}))
	require.NoError(t, arena.SetTipStates(1, []int32{0}))

	ops := []pruning.Operation{
		{Dest: 0, DestScaling: 0, Src1: 1, Src1Matrix: 0, Src2: 2, Src2Matrix: 1},
	}
	res := pruning.Run(arena, ops, true, pruning.ScalarOps{}, 0, nil, nil)
	require.Equal(t, 0, len(res.Errors))

	dest, err := arena.Partials(0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, dest[0], 1e-12)

	acc, err := arena.ScaleAccumulator(0)
	require.NoError(t, err)
	wantLog := math.Log(tiny * tiny)
	require.InDelta(t, wantLog, acc[0], 1e-6)
}

func TestRun_AmbiguityCodeExpandsToFullWeight(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      2,
		StateCount:        2,
		PatternCount:      1,
		EigenCount:        0,
		MatrixCount:       2,
		RateCategoryCount: 1,
		VectorWidth:       1,
		AmbiguityCount:    3,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)

	identity := []float64{1, 0, 0, 1}
	require.NoError(t, arena.SetTransitionMatrix(0, 0, identity))
	require.NoError(t, arena.SetTransitionMatrix(1, 0, identity))
	require.NoError(t, arena.SetAmbiguityCode(2, []float64{1, 1}))
	require.NoError(t, arena.SetTipStates(0, []int32{2}))
	require.NoError(t, arena.SetTipStates(1, []int32{0}))

	ops := []pruning.Operation{
		{Dest: 0, DestScaling: 0, Src1: 1, Src1Matrix: 0, Src2: 2, Src2Matrix: 1},
	}
	res := pruning.Run(arena, ops, false, pruning.ScalarOps{}, 0, nil, nil)
	require.Equal(t, 0, len(res.Errors))

	dest, err := arena.Partials(0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, dest[0], 1e-12)
	require.InDelta(t, 0.0, dest[1], 1e-12)
}

func TestRun_OutOfRangeDestIsFatal(t *testing.T) {
	arena := identityArena(t)
	ops := []pruning.Operation{
		{Dest: 7, DestScaling: 0, Src1: 1, Src1Matrix: 0, Src2: 2, Src2Matrix: 1},
	}
	res := pruning.Run(arena, ops, false, pruning.ScalarOps{}, 0, nil, nil)
	require.NotEqual(t, 0, len(res.Errors))
	require.Equal(t, errs.OutOfRange, res.WorstCode)
}

func TestRun_ReorderingIndependentOpsIsEquivalent(t *testing.T) {
	arenaA, opsA := partialsPartialsArena(t)
	resA := pruning.Run(arenaA, opsA, true, pruning.ScalarOps{}, 0, nil, nil)
	require.Equal(t, 0, len(resA.Errors))

	arenaB, opsB := partialsPartialsArena(t)
	opsB[0], opsB[1] = opsB[1], opsB[0]
	resB := pruning.Run(arenaB, opsB, true, pruning.ScalarOps{}, 0, nil, nil)
	require.Equal(t, 0, len(resB.Errors))

	rootA, _ := arenaA.Partials(2)
	rootB, _ := arenaB.Partials(2)
	require.InDeltaSlice(t, rootA, rootB, 1e-12)
}
