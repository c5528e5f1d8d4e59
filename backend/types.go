package backend

import (
	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/likelihood"
	"github.com/katalvlaran/gophylo/logging"
	"github.com/katalvlaran/gophylo/metrics"
	"github.com/katalvlaran/gophylo/pruning"
	"github.com/katalvlaran/gophylo/transition"
)

// Flags is a capability bitset advertised by a Factory and requested by a
// client via preferenceFlags/requirementFlags on create.
type Flags uint32

const (
	// FlagCPU marks a backend that runs on the host CPU (as opposed to an
	// accelerator device).
	FlagCPU Flags = 1 << iota

	// FlagVectorSIMD marks a backend whose inner kernels dispatch through
	// portable SIMD primitives rather than scalar loops.
	FlagVectorSIMD

	// FlagDoublePrecision marks a backend whose internal arithmetic is
	// IEEE-754 double precision (no host<->device conversion on set/get).
	FlagDoublePrecision

	// FlagSinglePrecision marks a backend whose internal arithmetic is
	// single precision; set/get convert to/from host double precision.
	FlagSinglePrecision

	// FlagAsync marks a backend whose UpdatePartials may return before the
	// schedule has completed; WaitForPartials is required before reading
	// results from such a backend.
	FlagAsync
)

// Has reports whether f contains every bit set in want.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// Resource describes one compute resource a Factory might bind to: the
// host CPU, a specific GPU device, and so on.
type Resource struct {
	Index        int
	Name         string
	Capabilities Flags
	MemoryBytes  uint64
}

// Backend is the per-instance runtime surface a Factory constructs. It
// owns the Arena and performs every instance-level operation of the
// public API.
type Backend interface {
	// Name reports the backend's identity, for diagnostics and
	// InitializeInstance's returned backend details.
	Name() string

	// Capabilities reports the capability bitset this running backend
	// instance satisfies.
	Capabilities() Flags

	// Arena returns the buffer arena this backend allocated.
	Arena() *buffer.Arena

	// Bind attaches the diagnostics a registry constructs this backend
	// under. Called once, right after a successful CreateImpl, before the
	// backend is ever looked up by handle. log and rec may be nil.
	Bind(log *logging.Logger, rec *metrics.Recorder)

	// UpdateTransitionMatrices batch-exponentiates eigenIndex's model
	// across edgeLengths and the instance's rate categories into the
	// named matrix buffers (and, when d1Idx/d2Idx are non-nil, their
	// first/second derivative matrices). handle identifies the calling
	// instance for diagnostics only.
	UpdateTransitionMatrices(handle int, eigenIndex int, probIdx, d1Idx, d2Idx []int, edgeLengths []float64, rates []float64) error

	// UpdatePartials executes an operation schedule through the pruning
	// kernel. On a synchronous backend it returns only once every
	// destination is readable; on an asynchronous backend it may return
	// once the schedule is merely accepted (see FlagAsync). handle
	// identifies the calling instance for diagnostics only.
	UpdatePartials(handle int, ops []pruning.Operation, rescale bool) error

	// WaitForPartials blocks until every listed destination buffer is
	// readable by the host. A synchronous backend may treat this as a
	// no-op.
	WaitForPartials(indices []int) error

	// CalculateRootLogLikelihoods integrates root partials.
	CalculateRootLogLikelihoods(req likelihood.RootRequest) ([]float64, error)

	// CalculateEdgeLogLikelihoods integrates edge partials with optional
	// first/second derivatives.
	CalculateEdgeLogLikelihoods(req likelihood.EdgeRequest) (likelihood.EdgeResult, error)

	// Release frees every resource this backend holds (accelerator
	// memory, worker pools). Safe to call exactly once.
	Release() error
}

// Factory constructs Backend instances for one resource family.
type Factory interface {
	// Name identifies this factory, e.g. "CPU", "CPU-VECTOR".
	Name() string

	// Capabilities reports what this factory can, in principle, satisfy.
	// Used to pre-filter before CreateImpl is attempted.
	Capabilities() Flags

	// CreateImpl attempts to allocate a Backend for spec on resource. It
	// returns (nil, ErrDeclined) when this factory cannot serve the
	// request; any other error (such as an invalid shape rejected by
	// buffer.NewArena) makes Chain.Create stop and return that error.
	CreateImpl(spec buffer.Spec, resource Resource) (Backend, error)
}

// transitionBuilder is the seam every CPU-family Backend shares for
// matrix exponentiation (the Transition-Matrix Builder component is
// backend-agnostic pure math).
type transitionBuilder = func(arena *buffer.Arena, eigenIndex int, probIdx, d1Idx, d2Idx []int, edgeLengths, rates []float64, handle int, log *logging.Logger) error

var _ transitionBuilder = transition.Build
