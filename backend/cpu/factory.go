// Package cpu implements the scalar CPU Backend: no SIMD, no accelerator
// dependency, always available. It is the fallback tail of the default
// Backend Factory Chain.
package cpu

import (
	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
)

// Factory constructs scalar CPU backends. It never declines: it has no
// resource requirements beyond host memory.
type Factory struct{}

// Name implements backend.Factory.
func (Factory) Name() string { return "CPU" }

// Capabilities implements backend.Factory.
func (Factory) Capabilities() backend.Flags {
	return backend.FlagCPU | backend.FlagDoublePrecision
}

// CreateImpl implements backend.Factory.
func (Factory) CreateImpl(spec buffer.Spec, resource backend.Resource) (backend.Backend, error) {
	arena, err := buffer.NewArena(spec)
	if err != nil {
		return nil, err
	}
	return &Backend{arena: arena, resource: resource}, nil
}
