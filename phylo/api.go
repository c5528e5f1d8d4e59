package phylo

import (
	"sync"

	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/config"
	"github.com/katalvlaran/gophylo/errs"
	"github.com/katalvlaran/gophylo/logging"
	"github.com/katalvlaran/gophylo/metrics"
	"github.com/katalvlaran/gophylo/registry"
)

// Engine is a process-wide likelihood engine: a registry of live
// instances plus the backend chain and resource list new instances are
// created against. The zero value is not usable; construct with New.
type Engine struct {
	reg *registry.Registry
}

// New constructs an Engine. log and rec may be nil (Nop logger, no-op
// metrics). resources advertises what GetResourceList reports and what
// resourceList indices in CreateInstance refer to.
func New(chain backend.Chain, resources []backend.Resource, log *logging.Logger, rec *metrics.Recorder) *Engine {
	return &Engine{reg: registry.New(chain, resources, log, rec)}
}

// GetResourceList enumerates the compute resources this engine can bind
// new instances to.
func (e *Engine) GetResourceList() []backend.Resource {
	return e.reg.GetResourceList()
}

// CreateInstance allocates buffers, walks the backend chain, and returns
// a live Handle.
func (e *Engine) CreateInstance(req CreateRequest) (Handle, error) {
	spec := buffer.Spec{
		TipCount:          req.TipCount,
		PartialsCount:     req.PartialsCount,
		CompactCount:      req.CompactCount,
		StateCount:        req.StateCount,
		PatternCount:      req.PatternCount,
		EigenCount:        req.EigenCount,
		MatrixCount:       req.MatrixCount,
		RateCategoryCount: req.RateCategoryCount,
		AmbiguityCount:    req.AmbiguityCount,
		Expansion:         req.Expansion,
	}
	var h Handle
	err := guard(func() error {
		var createErr error
		h, createErr = e.reg.Create(registry.CreateParams{
			Spec:        spec,
			Preference:  req.Preference,
			Requirement: req.Requirement,
		}, req.ResourceList)
		return createErr
	})
	return h, err
}

// InitializeInstance reports the backend details a prior CreateInstance
// selected for handle. Every backend candidate is fully initialized by
// the time Create returns, so this is a read-only lookup.
func (e *Engine) InitializeInstance(h Handle) (BackendInfo, error) {
	var info BackendInfo
	err := guard(func() error {
		b, lookupErr := e.reg.Lookup(h)
		if lookupErr != nil {
			return lookupErr
		}
		info = BackendInfo{Name: b.Name(), Capabilities: b.Capabilities()}
		return nil
	})
	return info, err
}

// Finalize releases handle's backend and returns its slot for reuse.
// Safe to call exactly once per successful CreateInstance.
func (e *Engine) Finalize(h Handle) error {
	return guard(func() error { return e.reg.Finalize(h) })
}

// SetPartials copies values into partials buffer index on handle.
func (e *Engine) SetPartials(h Handle, index int, values []float64) error {
	return e.withArena(h, func(a *buffer.Arena) error { return a.SetPartials(index, values) })
}

// GetPartials copies partials buffer index on handle into out.
func (e *Engine) GetPartials(h Handle, index int, out []float64) error {
	return e.withArena(h, func(a *buffer.Arena) error { return a.GetPartials(index, out) })
}

// SetTipStates writes a compact tip buffer.
func (e *Engine) SetTipStates(h Handle, tipIndex int, states []int32) error {
	return e.withArena(h, func(a *buffer.Arena) error { return a.SetTipStates(tipIndex, states) })
}

// SetAmbiguityCode installs the expansion weights for an ambiguity code
// ≥ the instance's state count.
func (e *Engine) SetAmbiguityCode(h Handle, code int, weights []float64) error {
	return e.withArena(h, func(a *buffer.Arena) error { return a.SetAmbiguityCode(code, weights) })
}

// SetEigenDecomposition installs an (E, E^-1, lambda) triple into slot
// index.
func (e *Engine) SetEigenDecomposition(h Handle, index int, eVec, eInv, lambda []float64) error {
	return e.withArena(h, func(a *buffer.Arena) error { return a.SetEigenDecomposition(index, eVec, eInv, lambda) })
}

// SetTransitionMatrix installs a precomputed matrix directly, bypassing
// UpdateTransitionMatrices.
func (e *Engine) SetTransitionMatrix(h Handle, index, category int, values []float64) error {
	return e.withArena(h, func(a *buffer.Arena) error { return a.SetTransitionMatrix(index, category, values) })
}

// SetCategoryRates installs the R per-category rate multipliers used by
// UpdateTransitionMatrices.
func (e *Engine) SetCategoryRates(h Handle, rates []float64) error {
	return e.withArena(h, func(a *buffer.Arena) error { return a.SetCategoryRates(rates) })
}

// UpdateTransitionMatrices batch-exponentiates eigenIndex's model across
// edgeLengths and the instance's rate categories into probIdx (and,
// when non-nil, d1Idx/d2Idx derivative matrices).
func (e *Engine) UpdateTransitionMatrices(h Handle, eigenIndex int, probIdx, d1Idx, d2Idx []int, edgeLengths []float64) error {
	return e.withBackend(h, func(b backend.Backend) error {
		return b.UpdateTransitionMatrices(int(h), eigenIndex, probIdx, d1Idx, d2Idx, edgeLengths, b.Arena().CategoryRates())
	})
}

// UpdatePartials executes an operation schedule through the pruning
// kernel, optionally rescaling each written destination.
func (e *Engine) UpdatePartials(h Handle, ops []Operation, rescale bool) error {
	return e.withBackend(h, func(b backend.Backend) error { return b.UpdatePartials(int(h), ops, rescale) })
}

// WaitForPartials blocks until every listed destination buffer is
// readable by the host (a no-op on a synchronous backend).
func (e *Engine) WaitForPartials(h Handle, indices []int) error {
	return e.withBackend(h, func(b backend.Backend) error { return b.WaitForPartials(indices) })
}

// CalculateRootLogLikelihoods integrates root partials into per-group,
// per-pattern log-likelihoods.
func (e *Engine) CalculateRootLogLikelihoods(h Handle, req RootRequest) ([]float64, error) {
	var out []float64
	err := e.withBackend(h, func(b backend.Backend) error {
		var callErr error
		out, callErr = b.CalculateRootLogLikelihoods(req)
		return callErr
	})
	return out, err
}

// CalculateEdgeLogLikelihoods integrates edge partials with optional
// first/second derivatives with respect to edge length.
func (e *Engine) CalculateEdgeLogLikelihoods(h Handle, req EdgeRequest) (EdgeResult, error) {
	var out EdgeResult
	err := e.withBackend(h, func(b backend.Backend) error {
		var callErr error
		out, callErr = b.CalculateEdgeLogLikelihoods(req)
		return callErr
	})
	return out, err
}

func (e *Engine) withBackend(h Handle, fn func(backend.Backend) error) error {
	return guard(func() error {
		b, err := e.reg.Lookup(h)
		if err != nil {
			return err
		}
		return fn(b)
	})
}

func (e *Engine) withArena(h Handle, fn func(*buffer.Arena) error) error {
	return e.withBackend(h, func(b backend.Backend) error { return fn(b.Arena()) })
}

// defaultEngine is the process-wide singleton the package-level
// functions drive, initialized lazily on first use and never torn down
// except per-handle via Finalize.
var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

func process() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New(registry.DefaultChain(), config.Default().Resources(), nil, nil)
	})
	return defaultEngine
}

// GetResourceList enumerates the process-wide engine's compute
// resources.
func GetResourceList() []backend.Resource { return process().GetResourceList() }

// CreateInstance allocates a new instance on the process-wide engine.
func CreateInstance(req CreateRequest) (Handle, error) { return process().CreateInstance(req) }

// InitializeInstance reports the backend details handle was created
// with, on the process-wide engine.
func InitializeInstance(h Handle) (BackendInfo, error) { return process().InitializeInstance(h) }

// Finalize releases handle on the process-wide engine.
func Finalize(h Handle) error { return process().Finalize(h) }

// SetPartials writes a partials buffer on the process-wide engine.
func SetPartials(h Handle, index int, values []float64) error {
	return process().SetPartials(h, index, values)
}

// GetPartials reads a partials buffer on the process-wide engine.
func GetPartials(h Handle, index int, out []float64) error {
	return process().GetPartials(h, index, out)
}

// SetTipStates writes a compact tip buffer on the process-wide engine.
func SetTipStates(h Handle, tipIndex int, states []int32) error {
	return process().SetTipStates(h, tipIndex, states)
}

// SetAmbiguityCode installs ambiguity-expansion weights on the
// process-wide engine.
func SetAmbiguityCode(h Handle, code int, weights []float64) error {
	return process().SetAmbiguityCode(h, code, weights)
}

// SetEigenDecomposition installs an eigendecomposition triple on the
// process-wide engine.
func SetEigenDecomposition(h Handle, index int, eVec, eInv, lambda []float64) error {
	return process().SetEigenDecomposition(h, index, eVec, eInv, lambda)
}

// SetTransitionMatrix installs a precomputed matrix on the process-wide
// engine.
func SetTransitionMatrix(h Handle, index, category int, values []float64) error {
	return process().SetTransitionMatrix(h, index, category, values)
}

// SetCategoryRates installs rate-category multipliers on the
// process-wide engine.
func SetCategoryRates(h Handle, rates []float64) error {
	return process().SetCategoryRates(h, rates)
}

// UpdateTransitionMatrices exponentiates matrices on the process-wide
// engine.
func UpdateTransitionMatrices(h Handle, eigenIndex int, probIdx, d1Idx, d2Idx []int, edgeLengths []float64) error {
	return process().UpdateTransitionMatrices(h, eigenIndex, probIdx, d1Idx, d2Idx, edgeLengths)
}

// UpdatePartials runs a pruning schedule on the process-wide engine.
func UpdatePartials(h Handle, ops []Operation, rescale bool) error {
	return process().UpdatePartials(h, ops, rescale)
}

// WaitForPartials synchronizes destinations on the process-wide engine.
func WaitForPartials(h Handle, indices []int) error {
	return process().WaitForPartials(h, indices)
}

// CalculateRootLogLikelihoods integrates root partials on the
// process-wide engine.
func CalculateRootLogLikelihoods(h Handle, req RootRequest) ([]float64, error) {
	return process().CalculateRootLogLikelihoods(h, req)
}

// CalculateEdgeLogLikelihoods integrates edge partials on the
// process-wide engine.
func CalculateEdgeLogLikelihoods(h Handle, req EdgeRequest) (EdgeResult, error) {
	return process().CalculateEdgeLogLikelihoods(h, req)
}

// Code translates err into the public error-code table (NO_ERROR when
// err is nil).
func Code(err error) errs.Code { return errs.CodeOf(err) }
