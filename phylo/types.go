package phylo

import (
	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/likelihood"
	"github.com/katalvlaran/gophylo/pruning"
	"github.com/katalvlaran/gophylo/registry"
)

// Handle is an opaque instance identifier: a small non-negative integer,
// starting at 0, whose slot is reused after Finalize.
type Handle = registry.Handle

// CreateRequest describes the fixed shape of one new instance, mirroring
// the dimension letters T, P, C, S, K, E, M, R.
type CreateRequest struct {
	TipCount          int
	PartialsCount     int
	CompactCount      int
	StateCount        int
	PatternCount      int
	EigenCount        int
	MatrixCount       int
	RateCategoryCount int
	AmbiguityCount    int
	Expansion         buffer.ExpansionMode

	ResourceList []int
	Preference   backend.Flags
	Requirement  backend.Flags
}

// BackendInfo reports the backend InitializeInstance selected for a
// handle.
type BackendInfo struct {
	Name         string
	ResourceName string
	Capabilities backend.Flags
}

// Operation is the public alias for one pruning schedule entry.
type Operation = pruning.Operation

// RootRequest/EdgeRequest/EdgeResult re-export the likelihood package's
// request/response shapes so callers need only import phylo.
type (
	RootRequest = likelihood.RootRequest
	EdgeRequest = likelihood.EdgeRequest
	EdgeResult  = likelihood.EdgeResult
)
