// Package pruning implements the Pruning Kernel: it consumes an operation
// schedule and executes Felsenstein's post-order recursion, writing
// parent partial-likelihoods from two children through their respective
// transition matrices.
//
// Three dispatch paths cover every pair of child kinds:
//
//	statesStates     — both children are compact tip buffers
//	statesPartials    — one compact tip, one partials buffer
//	partialsPartials — both children are partials buffers
//
// Operations execute in schedule order with respect to buffer reads and
// writes; adjacent operations whose read/write footprints are disjoint
// are grouped and dispatched across a small worker pool, matching the
// "adjacent independent operations may execute in parallel" concurrency
// note — never reordering operations that actually depend on each other.
//
// The state-count-wide dot products at the core of every path go through
// a VectorOps seam: ScalarOps is a plain Go loop; the cpuvector backend
// supplies an implementation backed by github.com/ajroetker/go-highway's
// portable SIMD primitives.
package pruning
