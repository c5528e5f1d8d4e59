// Package cpuvector implements a vectorized CPU Backend whose pruning
// dispatch runs its inner dot products through
// github.com/ajroetker/go-highway's portable SIMD primitives instead of a
// scalar loop. It declines only when the host has no usable SIMD level at
// all, in which case the scalar cpu backend is the better fit.
package cpuvector

import (
	"github.com/ajroetker/go-highway/hwy"

	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
)

// Factory constructs vectorized CPU backends.
type Factory struct{}

// Name implements backend.Factory.
func (Factory) Name() string { return "CPU-VECTOR" }

// Capabilities implements backend.Factory.
func (Factory) Capabilities() backend.Flags {
	return backend.FlagCPU | backend.FlagVectorSIMD | backend.FlagDoublePrecision
}

// CreateImpl implements backend.Factory. It declines when the host
// reports no SIMD dispatch level, deferring to the scalar cpu factory.
func (Factory) CreateImpl(spec buffer.Spec, resource backend.Resource) (backend.Backend, error) {
	if !hwy.HasSIMD() {
		return nil, backend.ErrDeclined
	}

	lanes := hwy.MaxLanes[float64]()
	if lanes < 1 {
		lanes = 1
	}
	spec.VectorWidth = lanes

	arena, err := buffer.NewArena(spec)
	if err != nil {
		return nil, err
	}
	return &Backend{arena: arena, resource: resource}, nil
}
