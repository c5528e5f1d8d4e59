package pruning

import "github.com/katalvlaran/gophylo/errs"

// NoScaling is the DestScaling sentinel meaning "do not record a
// rescaling contribution for this operation, even if the overall call
// requested rescale=true".
const NoScaling = -1

// Operation is one tuple of the operation schedule: combine two sources
// through their matrices into a destination partials buffer.
//
// Src1/Src2 are indices in the combined [0, P+C) space (buffer.Arena's
// ResolveSource decodes them); Src1Matrix/Src2Matrix index into the
// matrix-buffer space [0, M). Dest must be a partials buffer index < P.
type Operation struct {
	Dest        int
	DestScaling int // NoScaling disables rescaling for this op; the accumulator written is always Dest's
	Src1        int
	Src1Matrix  int
	Src2        int
	Src2Matrix  int
}

// VectorOps is the seam between schedule orchestration and the
// state-count-wide dot products every dispatch path performs. A VectorOps
// implementation must be safe for concurrent use by multiple goroutines
// (Run may invoke it from several worker-pool goroutines at once).
type VectorOps interface {
	// Name identifies this implementation for diagnostics.
	Name() string

	// Dot returns the inner product of a and b. len(a) must equal len(b).
	Dot(a, b []float64) float64
}

// Result summarizes one Run call: the worst error code encountered across
// every operation (NoError if none), and the individual errors in
// schedule order for diagnostics.
type Result struct {
	WorstCode errs.Code
	Errors    []error
}

// worstOf returns whichever of a, b ranks as the more severe error code.
// Range/uninitialized/unidentified outrank general (numerical), which
// outranks no-error.
func worstOf(a, b errs.Code) errs.Code {
	rank := func(c errs.Code) int {
		switch c {
		case errs.NoError:
			return 0
		case errs.GeneralError:
			return 1
		default:
			return 2
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}
