package cpu

import (
	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/likelihood"
	"github.com/katalvlaran/gophylo/logging"
	"github.com/katalvlaran/gophylo/metrics"
	"github.com/katalvlaran/gophylo/pruning"
	"github.com/katalvlaran/gophylo/transition"
)

// Backend is the scalar, synchronous implementation of backend.Backend.
// It never reports FlagAsync: every call is complete by the time it
// returns.
type Backend struct {
	arena    *buffer.Arena
	resource backend.Resource
	log      *logging.Logger
	metrics  *metrics.Recorder
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return "CPU" }

// Capabilities implements backend.Backend.
func (b *Backend) Capabilities() backend.Flags {
	return backend.FlagCPU | backend.FlagDoublePrecision
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

// UpdatePartials implements backend.Backend using the scalar VectorOps.
func (b *Backend) UpdatePartials(handle int, ops []pruning.Operation, rescale bool) error {
	res := pruning.Run(b.arena, ops, rescale, pruning.ScalarOps{}, handle, b.log, b.metrics)
	if len(res.Errors) == 0 {
		return nil
	}
	return res.Errors[0]
}

// WaitForPartials implements backend.Backend as a no-op: this backend is
// synchronous, so every UpdatePartials call has already completed.
func (b *Backend) WaitForPartials(indices []int) error { return nil }

// CalculateRootLogLikelihoods implements backend.Backend.
func (b *Backend) CalculateRootLogLikelihoods(req likelihood.RootRequest) ([]float64, error) {
	return likelihood.Root(b.arena, req)
}

// CalculateEdgeLogLikelihoods implements backend.Backend.
func (b *Backend) CalculateEdgeLogLikelihoods(req likelihood.EdgeRequest) (likelihood.EdgeResult, error) {
	return likelihood.Edge(b.arena, req)
}

// Release implements backend.Backend. The scalar backend holds no
// resources beyond host memory freed by the garbage collector.
func (b *Backend) Release() error { return nil }
