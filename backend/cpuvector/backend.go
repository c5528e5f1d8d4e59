package cpuvector

import (
	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/likelihood"
	"github.com/katalvlaran/gophylo/logging"
	"github.com/katalvlaran/gophylo/metrics"
	"github.com/katalvlaran/gophylo/pruning"
	"github.com/katalvlaran/gophylo/transition"
)

// Backend is the vectorized, synchronous implementation of
// backend.Backend.
type Backend struct {
	arena    *buffer.Arena
	resource backend.Resource
	log      *logging.Logger
	metrics  *metrics.Recorder
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return "CPU-VECTOR" }

// Capabilities implements backend.Backend.
func (b *Backend) Capabilities() backend.Flags {
	return backend.FlagCPU | backend.FlagVectorSIMD | backend.FlagDoublePrecision
}

// Arena implements backend.Backend.
func (b *Backend) Arena() *buffer.Arena { return b.arena }

// Bind implements backend.Backend.
func (b *Backend) Bind(log *logging.Logger, rec *metrics.Recorder) {
	b.log = log
	b.metrics = rec
}

// UpdateTransitionMatrices implements backend.Backend.
func (b *Backend) UpdateTransitionMatrices(handle int, eigenIndex int, probIdx, d1Idx, d2Idx []int, edgeLengths, rates []float64) error {
	return transition.Build(b.arena, eigenIndex, probIdx, d1Idx, d2Idx, edgeLengths, rates, handle, b.log)
}

// UpdatePartials implements backend.Backend using the SIMD-dispatched
// VectorOps.
func (b *Backend) UpdatePartials(handle int, ops []pruning.Operation, rescale bool) error {
	res := pruning.Run(b.arena, ops, rescale, pruning.HWYOps{}, handle, b.log, b.metrics)
	if len(res.Errors) == 0 {
		return nil
	}
	return res.Errors[0]
}

// WaitForPartials implements backend.Backend as a no-op: this backend is
// synchronous.
func (b *Backend) WaitForPartials(indices []int) error { return nil }

// CalculateRootLogLikelihoods implements backend.Backend.
func (b *Backend) CalculateRootLogLikelihoods(req likelihood.RootRequest) ([]float64, error) {
	return likelihood.Root(b.arena, req)
}

// CalculateEdgeLogLikelihoods implements backend.Backend.
func (b *Backend) CalculateEdgeLogLikelihoods(req likelihood.EdgeRequest) (likelihood.EdgeResult, error) {
	return likelihood.Edge(b.arena, req)
}

// Release implements backend.Backend. The vectorized backend holds no
// resources beyond host memory freed by the garbage collector.
func (b *Backend) Release() error { return nil }
