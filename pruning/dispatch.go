package pruning

import (
	"math"

	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/logging"
	"github.com/katalvlaran/gophylo/metrics"
)

// executeOp runs one schedule entry against arena. opIndex is only used
// to annotate errors. handle, log, rec feed the rescale/numerical-fault
// diagnostics this function detects; log is assumed non-nil (Run
// defaults it).
func executeOp(arena *buffer.Arena, op Operation, opIndex int, rescale bool, vec VectorOps, handle int, log *logging.Logger, rec *metrics.Recorder) error {
	spec := arena.Spec()
	k, r, sp, s := spec.PatternCount, spec.RateCategoryCount, arena.SPadded(), spec.StateCount

	dest, err := arena.Partials(op.Dest)
	if err != nil {
		return rangef(opIndex, "Dest", op.Dest)
	}

	src1Compact, src1Idx, err := arena.ResolveSource(op.Src1)
	if err != nil {
		return rangef(opIndex, "Src1", op.Src1)
	}
	src2Compact, src2Idx, err := arena.ResolveSource(op.Src2)
	if err != nil {
		return rangef(opIndex, "Src2", op.Src2)
	}

	m1, err := arena.Matrix(op.Src1Matrix)
	if err != nil {
		return rangef(opIndex, "Src1Matrix", op.Src1Matrix)
	}
	m2, err := arena.Matrix(op.Src2Matrix)
	if err != nil {
		return rangef(opIndex, "Src2Matrix", op.Src2Matrix)
	}

	var tip1, tip2 []int32
	var p1, p2 []float64
	if src1Compact {
		if tip1, err = arena.TipStates(src1Idx); err != nil {
			return rangef(opIndex, "Src1", op.Src1)
		}
	} else if p1, err = arena.Partials(src1Idx); err != nil {
		return rangef(opIndex, "Src1", op.Src1)
	}
	if src2Compact {
		if tip2, err = arena.TipStates(src2Idx); err != nil {
			return rangef(opIndex, "Src2", op.Src2)
		}
	} else if p2, err = arena.Partials(src2Idx); err != nil {
		return rangef(opIndex, "Src2", op.Src2)
	}

	var firstErr error
	stride := arena.Stride()

	for p := 0; p < k; p++ {
		patternBase := p * stride
		for c := 0; c < r; c++ {
			base := patternBase + c*sp
			matBase := c * sp * sp
			mRow1 := func(j int) []float64 { return m1[matBase+j*sp : matBase+j*sp+sp] }
			mRow2 := func(j int) []float64 { return m2[matBase+j*sp : matBase+j*sp+sp] }

			for j := 0; j < sp; j++ {
				var out float64
				if j >= s {
					out = 0
				} else {
					f1 := factor(arena, vec, mRow1(j), s, src1Compact, tip1, p1, p, base)
					f2 := factor(arena, vec, mRow2(j), s, src2Compact, tip2, p2, p, base)
					out = f1 * f2
				}
				dest[base+j] = out
			}
		}

		// Rescaling runs over the full (category, state) block of a pattern
		// at once, not one category at a time: the max is taken across
		// every category so all of a pattern's categories share one scale
		// factor.
		patternBlock := dest[patternBase : patternBase+stride]
		if !blockFinite(patternBlock) {
			faultErr := numericalf(opIndex, p)
			if firstErr == nil {
				firstErr = faultErr
			}
			log.NumericalFault(handle, opIndex, p, faultErr)
			rec.NumericalFault()
			continue
		}

		s1 := accumulatorSource(arena, src1Compact, src1Idx, p)
		s2 := accumulatorSource(arena, src2Compact, src2Idx, p)
		acc, accErr := arena.ScaleAccumulator(op.Dest)
		if accErr != nil {
			continue
		}
		if rescale && op.DestScaling != NoScaling {
			logScale := rescaleBlock(patternBlock)
			acc[p] = s1 + s2 + logScale
			log.RescaleApplied(handle, op.Dest, p, logScale)
			rec.RescaleApplied(1)
		} else {
			acc[p] = s1 + s2
		}
	}
	return firstErr
}

// factor computes one child's contribution to destination state j: the
// weighted tip lookup for a compact source, or the matrix-row dot
// partials-vector product for a partials source.
func factor(arena *buffer.Arena, vec VectorOps, matRow []float64, s int, compact bool, tip []int32, partials []float64, pattern int, base int) float64 {
	if compact {
		code := tip[pattern]
		weights, err := arena.TipWeights(code)
		if err != nil {
			return 0
		}
		return vec.Dot(weights, matRow[:s])
	}
	sp := len(matRow)
	return vec.Dot(matRow, partials[base:base+sp])
}

func blockFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return false
		}
	}
	return true
}
