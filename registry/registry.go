package registry

import (
	"sync"

	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/backend/cpu"
	"github.com/katalvlaran/gophylo/backend/cpuvector"
	"github.com/katalvlaran/gophylo/errs"
	"github.com/katalvlaran/gophylo/logging"
	"github.com/katalvlaran/gophylo/metrics"
)

// DefaultChain returns the process's default Backend Factory Chain,
// vectorized before scalar.
func DefaultChain() backend.Chain {
	return backend.Chain{cpuvector.Factory{}, cpu.Factory{}}
}

// Registry is the process-wide table of live instances. The zero value
// is not usable; construct one with New.
type Registry struct {
	chain     backend.Chain
	log       *logging.Logger
	metrics   *metrics.Recorder
	resources []backend.Resource

	mu      sync.RWMutex
	slots   map[Handle]*instance
	freeIDs []Handle
	nextID  Handle
}

// New constructs a Registry that walks chain on Create and advertises
// resources through GetResourceList. log and rec may be nil (Nop logger,
// no-op recorder).
func New(chain backend.Chain, resources []backend.Resource, log *logging.Logger, rec *metrics.Recorder) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		chain:     chain,
		log:       log,
		metrics:   rec,
		resources: resources,
		slots:     make(map[Handle]*instance),
	}
}

// GetResourceList returns the compute resources this registry advertises.
func (r *Registry) GetResourceList() []backend.Resource {
	return r.resources
}

// Create allocates a new instance, walking the chain with
// params.Requirement|params.Preference first and falling back to
// params.Requirement alone if no factory satisfies the stronger ask.
func (r *Registry) Create(params CreateParams, resourceList []int) (Handle, error) {
	b, resource, err := r.chain.Create(params.Spec, r.resources, resourceList, params.Requirement|params.Preference)
	if err != nil {
		b, resource, err = r.chain.Create(params.Spec, r.resources, resourceList, params.Requirement)
	}
	if err != nil {
		return 0, errs.Numerical("registry: no factory accepted create request: %v", err)
	}

	r.mu.Lock()
	handle := r.allocHandle()
	r.slots[handle] = &instance{b: b, resource: resource}
	r.mu.Unlock()

	b.Bind(r.log, r.metrics)
	r.log.BackendSelected(int(handle), b.Name(), resource.Index)
	if r.metrics != nil {
		r.metrics.InstanceCreated()
	}
	return handle, nil
}

// allocHandle must be called with mu held.
func (r *Registry) allocHandle() Handle {
	if n := len(r.freeIDs); n > 0 {
		h := r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		return h
	}
	h := r.nextID
	r.nextID++
	return h
}

// Lookup returns the live backend for handle, or errs.ErrUninitializedInstance.
func (r *Registry) Lookup(handle Handle) (backend.Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.slots[handle]
	if !ok {
		return nil, errs.ErrUninitializedInstance
	}
	return inst.b, nil
}

// Finalize releases handle's backend and returns its slot to the
// free-list. Safe to call exactly once per successful Create.
func (r *Registry) Finalize(handle Handle) error {
	r.mu.Lock()
	inst, ok := r.slots[handle]
	if !ok {
		r.mu.Unlock()
		return errs.ErrUninitializedInstance
	}
	delete(r.slots, handle)
	r.freeIDs = append(r.freeIDs, handle)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.InstanceFinalized()
	}
	return inst.b.Release()
}
