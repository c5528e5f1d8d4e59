// Package buffer implements the per-instance Buffer Arena: typed,
// index-addressed buffer pools for partial-likelihood vectors, compact
// tip-state vectors, transition-probability matrices, eigendecomposition
// triples, and rescale-factor accumulators.
//
// Allocation is one-shot at Arena construction (NewArena); nothing grows
// afterward. Every logical buffer is one contiguous flat slice plus the
// Arena's shared descriptor (K, R, SPadded), following the same flat
// row-major layout the rest of the retrieved pack uses for dense
// matrices: one allocation, index math instead of pointer trees.
//
// Index spaces:
//
//	partials buffers: [0, P)
//	compact tip buffers: [0, C), addressed in operation records at
//	  offset P..P+C (ResolveSource subtracts P back out)
//	transition matrices: [0, M)
//	eigendecomposition slots: [0, E)
//
// Arena is not safe for concurrent mutating calls on the same instance
// (single-writer model); distinct Arenas are fully independent.
package buffer
