package pruning

import (
	"math"

	"github.com/katalvlaran/gophylo/buffer"
)

// rescaleBlock performs per-operation rescaling: given one pattern's
// (category, state) block, find its maximum entry; if
// positive, divide every entry by it and return log(scale) to be summed
// into the destination's scale accumulator. A degenerate (all-zero)
// pattern is left untouched and contributes 0.
func rescaleBlock(block []float64) float64 {
	max := 0.0
	for _, v := range block {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return 0
	}
	inv := 1 / max
	for i := range block {
		block[i] *= inv
	}
	return math.Log(max)
}

// accumulatorSource resolves the log-scale accumulator contribution from
// one operand: 0 for a compact tip source, or the stored accumulator
// value for a partials source.
func accumulatorSource(arena *buffer.Arena, compact bool, idx, pattern int) float64 {
	if compact {
		return 0
	}
	acc, err := arena.ScaleAccumulator(idx)
	if err != nil || acc == nil {
		return 0
	}
	return acc[pattern]
}
