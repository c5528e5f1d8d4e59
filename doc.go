// Package gophylo is a phylogenetic likelihood compute engine: given a
// continuous-time Markov substitution model and an operation schedule
// describing a post-order tree traversal, it exponentiates transition
// matrices from a cached eigendecomposition, runs the Felsenstein
// pruning recursion with numerical rescaling, and integrates root and
// edge partials into per-pattern log-likelihoods.
//
// No tree topology is stored anywhere in the engine: every call to
// updatePartials supplies the schedule of combine-two-children-into-one
// operations, and the caller is free to re-derive that schedule however
// it manages its own tree structure.
//
// Everything is handle-based. A client calls phylo.CreateInstance to
// allocate a fixed-shape set of buffers, gets back an opaque Handle, and
// drives every subsequent call (setPartials, setEigenDecomposition,
// updateTransitionMatrices, updatePartials, calculateRootLogLikelihoods,
// ...) through that Handle. The package layout mirrors the engine's
// components:
//
//	errs/       — the five-kind error taxonomy and boundary translation
//	buffer/     — the per-instance typed buffer arena
//	backend/    — the Factory/Backend interfaces and the factory chain
//	backend/cpu       — scalar reference backend
//	backend/cpuvector — SIMD-dispatched vectorized backend
//	transition/ — eigendecomposition-based transition-matrix builder
//	pruning/    — the Felsenstein pruning kernel and rescaling
//	likelihood/ — root and edge log-likelihood integration
//	registry/   — the process-wide handle table and default chain
//	phylo/      — the stable public API tying all of the above together
//	logging/    — structured diagnostics
//	metrics/    — optional Prometheus instrumentation
//	config/     — static resource-profile loading
package gophylo
