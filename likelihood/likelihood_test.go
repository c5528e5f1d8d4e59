package likelihood_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/likelihood"
)

func twoStateArena(t *testing.T) *buffer.Arena {
	t.Helper()
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      0,
		StateCount:        2,
		PatternCount:      1,
		RateCategoryCount: 1,
		MatrixCount:       1,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)
	require.NoError(t, arena.SetPartials(0, []float64{0.3, 0.7}))
	return arena
}

func TestRoot_MatchesHandComputedSum(t *testing.T) {
	arena := twoStateArena(t)
	req := likelihood.RootRequest{
		BufferIndices:    []int{0},
		Weights:          []float64{1.0},
		StateFrequencies: []float64{0.5, 0.5},
	}
	out, err := likelihood.Root(arena, req)
	require.NoError(t, err)
	require.Len(t, out, 1)
	want := math.Log(0.5*0.3 + 0.5*0.7)
	require.InDelta(t, want, out[0], 1e-12)
}

func TestRoot_ZeroLikelihoodIsNegativeInfinity(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      0,
		StateCount:        2,
		PatternCount:      1,
		RateCategoryCount: 1,
		MatrixCount:       1,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)
	require.NoError(t, arena.SetPartials(0, []float64{0, 0}))

	req := likelihood.RootRequest{
		BufferIndices:    []int{0},
		Weights:          []float64{1.0},
		StateFrequencies: []float64{0.5, 0.5},
	}
	out, err := likelihood.Root(arena, req)
	require.NoError(t, err)
	require.True(t, math.IsInf(out[0], -1))
}

func TestRoot_AddsScaleAccumulator(t *testing.T) {
	arena := twoStateArena(t)
	acc, err := arena.ScaleAccumulator(0)
	require.NoError(t, err)
	acc[0] = 3.5

	req := likelihood.RootRequest{
		BufferIndices:    []int{0},
		Weights:          []float64{1.0},
		StateFrequencies: []float64{0.5, 0.5},
	}
	out, err := likelihood.Root(arena, req)
	require.NoError(t, err)
	want := math.Log(0.5*0.3+0.5*0.7) + 3.5
	require.InDelta(t, want, out[0], 1e-12)
}

func TestEdge_IdentityMatrixMatchesRoot(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     2,
		CompactCount:      0,
		StateCount:        2,
		PatternCount:      1,
		RateCategoryCount: 1,
		MatrixCount:       1,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)
	require.NoError(t, arena.SetPartials(0, []float64{0.3, 0.7})) // parent
	require.NoError(t, arena.SetPartials(1, []float64{1, 1}))     // child, all-ones
	require.NoError(t, arena.SetTransitionMatrix(0, 0, []float64{1, 0, 0, 1}))

	req := likelihood.EdgeRequest{
		Parent:           []int{0},
		Child:            []int{1},
		ProbIdx:          []int{0},
		Weights:          []float64{1.0},
		StateFrequencies: []float64{0.5, 0.5},
	}
	res, err := likelihood.Edge(arena, req)
	require.NoError(t, err)
	want := math.Log(0.5*0.3 + 0.5*0.7)
	require.InDelta(t, want, res.LogLikelihood[0], 1e-12)
	require.Nil(t, res.D1)
	require.Nil(t, res.D2)
}

func TestEdge_DerivativesComputedWhenRequested(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     2,
		CompactCount:      0,
		StateCount:        2,
		PatternCount:      1,
		RateCategoryCount: 1,
		MatrixCount:       3,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)
	require.NoError(t, arena.SetPartials(0, []float64{0.3, 0.7}))
	require.NoError(t, arena.SetPartials(1, []float64{1, 1}))
	require.NoError(t, arena.SetTransitionMatrix(0, 0, []float64{1, 0, 0, 1}))
	require.NoError(t, arena.SetTransitionMatrix(1, 0, []float64{0.1, -0.1, -0.1, 0.1}))
	require.NoError(t, arena.SetTransitionMatrix(2, 0, []float64{0.01, -0.01, -0.01, 0.01}))

	req := likelihood.EdgeRequest{
		Parent:           []int{0},
		Child:            []int{1},
		ProbIdx:          []int{0},
		FirstDerivIdx:    []int{1},
		SecondDerivIdx:   []int{2},
		Weights:          []float64{1.0},
		StateFrequencies: []float64{0.5, 0.5},
	}
	res, err := likelihood.Edge(arena, req)
	require.NoError(t, err)
	require.NotNil(t, res.D1)
	require.NotNil(t, res.D2)
	require.False(t, math.IsNaN(res.D1[0]))
	require.False(t, math.IsNaN(res.D2[0]))
}

func TestEdge_ZeroLikelihoodDerivativesAreNaN(t *testing.T) {
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     2,
		CompactCount:      0,
		StateCount:        2,
		PatternCount:      1,
		RateCategoryCount: 1,
		MatrixCount:       2,
		VectorWidth:       1,
	}
	arena, err := buffer.NewArena(spec)
	require.NoError(t, err)
	require.NoError(t, arena.SetPartials(0, []float64{0, 0}))
	require.NoError(t, arena.SetPartials(1, []float64{1, 1}))
	require.NoError(t, arena.SetTransitionMatrix(0, 0, []float64{1, 0, 0, 1}))
	require.NoError(t, arena.SetTransitionMatrix(1, 0, []float64{0.1, -0.1, -0.1, 0.1}))

	req := likelihood.EdgeRequest{
		Parent:           []int{0},
		Child:            []int{1},
		ProbIdx:          []int{0},
		FirstDerivIdx:    []int{1},
		Weights:          []float64{1.0},
		StateFrequencies: []float64{0.5, 0.5},
	}
	res, err := likelihood.Edge(arena, req)
	require.NoError(t, err)
	require.True(t, math.IsInf(res.LogLikelihood[0], -1))
	require.True(t, math.IsNaN(res.D1[0]))
}
