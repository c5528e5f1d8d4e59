package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/backend/cpu"
	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/likelihood"
	"github.com/katalvlaran/gophylo/pruning"
)

func TestFactory_CreateImplNeverDeclines(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      2,
		StateCount:        2,
		PatternCount:      1,
		RateCategoryCount: 1,
		MatrixCount:       2,
		VectorWidth:       1,
	}
	b, err := cpu.Factory{}.CreateImpl(spec, backend.Resource{Index: 0})
	require.NoError(t, err)
	require.Equal(t, "CPU", b.Name())
	require.True(t, b.Capabilities().Has(backend.FlagCPU))
}

func TestBackend_EndToEndTwoTip(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      2,
		StateCount:        2,
		PatternCount:      1,
		RateCategoryCount: 1,
		MatrixCount:       2,
		VectorWidth:       1,
	}
	b, err := cpu.Factory{}.CreateImpl(spec, backend.Resource{Index: 0})
	require.NoError(t, err)
	arena := b.Arena()

	identity := []float64{1, 0, 0, 1}
	require.NoError(t, arena.SetTransitionMatrix(0, 0, identity))
	require.NoError(t, arena.SetTransitionMatrix(1, 0, identity))
	require.NoError(t, arena.SetTipStates(0, []int32{0}))
	require.NoError(t, arena.SetTipStates(1, []int32{0}))

	ops := []pruning.Operation{
		{Dest: 0, DestScaling: 0, Src1: 1, Src1Matrix: 0, Src2: 2, Src2Matrix: 1},
	}
	require.NoError(t, b.UpdatePartials(0, ops, true))
	require.NoError(t, b.WaitForPartials([]int{0}))

	out, err := b.CalculateRootLogLikelihoods(likelihood.RootRequest{
		BufferIndices:    []int{0},
		Weights:          []float64{1.0},
		StateFrequencies: []float64{0.5, 0.5},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.InDelta(t, -0.69314718, out[0], 1e-6)
	require.NoError(t, b.Release())
}
