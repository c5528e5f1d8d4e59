package likelihood

import (
	"math"

	"github.com/katalvlaran/gophylo/buffer"
)

// Root computes calculateRootLogLikelihoods against arena's partials and
// scale-accumulator buffers.
func Root(arena *buffer.Arena, req RootRequest) ([]float64, error) {
	spec := arena.Spec()
	k, r, s, sp := spec.PatternCount, spec.RateCategoryCount, spec.StateCount, arena.SPadded()
	count := len(req.BufferIndices)

	if len(req.Weights) != count*r {
		return nil, shapef("Root", "Weights", len(req.Weights), count*r)
	}
	if len(req.StateFrequencies) != count*s {
		return nil, shapef("Root", "StateFrequencies", len(req.StateFrequencies), count*s)
	}

	out := make([]float64, count*k)
	for g, bufIdx := range req.BufferIndices {
		partials, err := arena.Partials(bufIdx)
		if err != nil {
			return nil, rangef("Root", "BufferIndices", bufIdx)
		}
		acc, err := arena.ScaleAccumulator(bufIdx)
		if err != nil {
			return nil, rangef("Root", "BufferIndices", bufIdx)
		}
		weights := req.Weights[g*r : g*r+r]
		freqs := req.StateFrequencies[g*s : g*s+s]

		for p := 0; p < k; p++ {
			l := rootSum(partials, weights, freqs, p, r, sp, s)
			if l <= 0 {
				out[g*k+p] = math.Inf(-1)
				continue
			}
			out[g*k+p] = math.Log(l) + acc[p]
		}
	}
	return out, nil
}

func rootSum(partials, weights, freqs []float64, p, r, sp, s int) float64 {
	var total float64
	for c := 0; c < r; c++ {
		base := (p*r + c) * sp
		var inner float64
		for j := 0; j < s; j++ {
			inner += freqs[j] * partials[base+j]
		}
		total += weights[c] * inner
	}
	return total
}

// Edge computes calculateEdgeLogLikelihoods, including first and second
// derivative ratios when req.FirstDerivIdx/SecondDerivIdx are non-nil.
func Edge(arena *buffer.Arena, req EdgeRequest) (EdgeResult, error) {
	spec := arena.Spec()
	k, r, s, sp := spec.PatternCount, spec.RateCategoryCount, spec.StateCount, arena.SPadded()
	count := len(req.Parent)

	if len(req.Weights) != r {
		return EdgeResult{}, shapef("Edge", "Weights", len(req.Weights), r)
	}
	if len(req.StateFrequencies) != s {
		return EdgeResult{}, shapef("Edge", "StateFrequencies", len(req.StateFrequencies), s)
	}
	wantDerivs := req.FirstDerivIdx != nil
	wantD2 := wantDerivs && req.SecondDerivIdx != nil

	res := EdgeResult{LogLikelihood: make([]float64, count*k)}
	if wantDerivs {
		res.D1 = make([]float64, count*k)
	}
	if wantD2 {
		res.D2 = make([]float64, count*k)
	}

	for i := 0; i < count; i++ {
		parentCompact, parentIdx, err := arena.ResolveSource(req.Parent[i])
		if err != nil || parentCompact {
			return EdgeResult{}, rangef("Edge", "Parent", req.Parent[i])
		}
		parent, err := arena.Partials(parentIdx)
		if err != nil {
			return EdgeResult{}, rangef("Edge", "Parent", req.Parent[i])
		}
		scale, err := arena.ScaleAccumulator(parentIdx)
		if err != nil {
			return EdgeResult{}, rangef("Edge", "Parent", req.Parent[i])
		}

		childCompact, childIdx, err := arena.ResolveSource(req.Child[i])
		if err != nil {
			return EdgeResult{}, rangef("Edge", "Child", req.Child[i])
		}
		var childPartials []float64
		var childTips []int32
		if childCompact {
			if childTips, err = arena.TipStates(childIdx); err != nil {
				return EdgeResult{}, rangef("Edge", "Child", req.Child[i])
			}
		} else if childPartials, err = arena.Partials(childIdx); err != nil {
			return EdgeResult{}, rangef("Edge", "Child", req.Child[i])
		}

		m, err := arena.Matrix(req.ProbIdx[i])
		if err != nil {
			return EdgeResult{}, rangef("Edge", "ProbIdx", req.ProbIdx[i])
		}
		var d1, d2 []float64
		if wantDerivs {
			if d1, err = arena.Matrix(req.FirstDerivIdx[i]); err != nil {
				return EdgeResult{}, rangef("Edge", "FirstDerivIdx", req.FirstDerivIdx[i])
			}
		}
		if wantD2 {
			if d2, err = arena.Matrix(req.SecondDerivIdx[i]); err != nil {
				return EdgeResult{}, rangef("Edge", "SecondDerivIdx", req.SecondDerivIdx[i])
			}
		}

		for p := 0; p < k; p++ {
			l := edgeSum(parent, m, childCompact, childTips, childPartials, arena, p, r, sp, s, req.Weights, req.StateFrequencies)
			idx := i*k + p
			if l <= 0 {
				res.LogLikelihood[idx] = math.Inf(-1)
				if wantDerivs {
					res.D1[idx] = math.NaN()
				}
				if wantD2 {
					res.D2[idx] = math.NaN()
				}
				continue
			}
			res.LogLikelihood[idx] = math.Log(l) + scale[p]

			if wantDerivs {
				lp := edgeSum(parent, d1, childCompact, childTips, childPartials, arena, p, r, sp, s, req.Weights, req.StateFrequencies)
				ratio := lp / l
				res.D1[idx] = ratio
				if wantD2 {
					lpp := edgeSum(parent, d2, childCompact, childTips, childPartials, arena, p, r, sp, s, req.Weights, req.StateFrequencies)
					res.D2[idx] = lpp/l - ratio*ratio
				}
			}
		}
	}
	return res, nil
}

// edgeSum computes Σ_c w_c Σ_j π_j parent[p,c,j] Σ_k M[c,j,k] child[p,c,k]
// for one pattern, reusing the same inner-sum shape for L, L', and L'' by
// swapping in the matrix mat.
func edgeSum(parent, mat []float64, childCompact bool, childTips []int32, childPartials []float64, arena *buffer.Arena, p, r, sp, s int, weights, freqs []float64) float64 {
	var childRow []float64
	if childCompact {
		row, err := arena.TipWeights(childTips[p])
		if err == nil {
			childRow = row
		} else {
			childRow = make([]float64, s)
		}
	}

	var total float64
	for c := 0; c < r; c++ {
		base := (p*r + c) * sp
		matBase := c * sp * sp
		if !childCompact {
			childRow = childPartials[base : base+s]
		}

		var inner float64
		for j := 0; j < s; j++ {
			row := mat[matBase+j*sp : matBase+j*sp+sp]
			var sum float64
			for kk := 0; kk < s; kk++ {
				sum += row[kk] * childRow[kk]
			}
			inner += freqs[j] * parent[base+j] * sum
		}
		total += weights[c] * inner
	}
	return total
}
