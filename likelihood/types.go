package likelihood

// RootRequest describes one calculateRootLogLikelihoods call. Each root
// group g may use its own rate-category weights and equilibrium state
// frequencies (a mixed-model partition), so Weights and StateFrequencies
// are indexed per group.
type RootRequest struct {
	// BufferIndices names the partials buffer to integrate for each root
	// group, length count.
	BufferIndices []int

	// Weights holds the rate-category weights, length count*R.
	Weights []float64

	// StateFrequencies holds the equilibrium state frequencies, length
	// count*S.
	StateFrequencies []float64
}

// EdgeRequest describes one calculateEdgeLogLikelihoods call: a batch of
// edges sharing one substitution model (rate-category weights and
// equilibrium frequencies are shared across the whole batch).
type EdgeRequest struct {
	// Parent, Child, ProbIdx name the parent partials buffer, child
	// source (partials or compact tip, in the combined index space), and
	// transition-matrix buffer for each edge, each length count.
	Parent  []int
	Child   []int
	ProbIdx []int

	// FirstDerivIdx and SecondDerivIdx name the derivative matrix buffers
	// for each edge, length count. Nil means derivatives are not
	// requested for this call. SecondDerivIdx is used only together with
	// FirstDerivIdx: when FirstDerivIdx is nil, no derivatives are
	// computed and both D1 and D2 are nil.
	FirstDerivIdx  []int
	SecondDerivIdx []int

	// Weights holds the rate-category weights shared by every edge in
	// the batch, length R.
	Weights []float64

	// StateFrequencies holds the equilibrium state frequencies shared by
	// every edge in the batch, length S.
	StateFrequencies []float64
}

// EdgeResult holds the per-pattern outputs of one Edge call: one
// length-K slice per edge in the batch.
type EdgeResult struct {
	// LogLikelihood holds log(L[p]) + scale for every edge, length
	// count*K.
	LogLikelihood []float64

	// D1 holds L'[p]/L[p] for every edge, length count*K, or nil when
	// first derivatives were not requested.
	D1 []float64

	// D2 holds L''[p]/L[p] - (L'[p]/L[p])^2 for every edge, length
	// count*K, or nil when second derivatives were not requested.
	D2 []float64
}
