package buffer

// Arena owns every buffer pool for one Instance. All storage is allocated
// once, in NewArena; nothing grows afterward.
//
// Stage 1 (Validate): NewArena checks T, P, S, K and R are positive
// (C, E and M may be zero).
// Stage 2 (Prepare): allocate flat backing slices for every pool.
// Stage 3 (Finalize): return the ready Arena.
type Arena struct {
	spec    Spec
	sPadded int
	stride  int // R * SPadded: elements per pattern in a partials buffer

	partials []([]float64) // [0, P), each length K*R*SPadded
	scale    []([]float64) // [0, P), each length K (log-scale accumulator)

	tipStates []([]int32) // [0, C), each length K

	matrices []([]float64) // [0, M), each length R*SPadded*SPadded

	eigens []Eigen // [0, E)

	// ambiguity holds the {0,1}-or-custom weight rows for codes in
	// [StateCount, ambiguityCount), each of length StateCount. Index 0 of
	// this slice corresponds to code == StateCount.
	ambiguity [][]float64

	// rates holds the R per-category rate multipliers consumed by
	// transition.Build, defaulting to 1.0 until SetCategoryRates installs
	// real values.
	rates []float64
}

// NewArena allocates all buffer pools described by spec.
func NewArena(spec Spec) (*Arena, error) {
	if spec.TipCount <= 0 || spec.PartialsCount <= 0 || spec.StateCount <= 0 ||
		spec.PatternCount <= 0 || spec.RateCategoryCount <= 0 {
		return nil, shapef("NewArena", 0, 1)
	}

	sPadded := spec.SPadded()
	stride := spec.RateCategoryCount * sPadded
	partialsLen := spec.PatternCount * stride

	a := &Arena{
		spec:      spec,
		sPadded:   sPadded,
		stride:    stride,
		partials:  make([][]float64, spec.PartialsCount),
		scale:     make([][]float64, spec.PartialsCount),
		tipStates: make([][]int32, spec.CompactCount),
		matrices:  make([][]float64, spec.MatrixCount),
		eigens:    make([]Eigen, spec.EigenCount),
	}
	for i := range a.partials {
		a.partials[i] = make([]float64, partialsLen)
		a.scale[i] = make([]float64, spec.PatternCount)
	}
	for i := range a.tipStates {
		a.tipStates[i] = make([]int32, spec.PatternCount)
	}
	matrixLen := spec.RateCategoryCount * sPadded * sPadded
	for i := range a.matrices {
		a.matrices[i] = make([]float64, matrixLen)
	}
	extra := spec.ambiguityCount() - spec.StateCount
	if extra > 0 {
		a.ambiguity = make([][]float64, extra)
	}

	a.rates = make([]float64, spec.RateCategoryCount)
	for i := range a.rates {
		a.rates[i] = defaultRate
	}

	return a, nil
}

// SetCategoryRates installs the R per-category rate multipliers used by
// transition.Build. len(rates) must equal RateCategoryCount.
func (a *Arena) SetCategoryRates(rates []float64) error {
	if len(rates) != a.spec.RateCategoryCount {
		return shapef("SetCategoryRates", len(rates), a.spec.RateCategoryCount)
	}
	copy(a.rates, rates)
	return nil
}

// CategoryRates returns the R per-category rate multipliers, defaulting
// to all 1.0 until SetCategoryRates is called.
func (a *Arena) CategoryRates() []float64 {
	return a.rates
}

// Spec returns the Arena's immutable shape descriptor.
func (a *Arena) Spec() Spec { return a.spec }

// SPadded returns the padded state count used by every matrix and
// partials buffer in this Arena.
func (a *Arena) SPadded() int { return a.sPadded }

// Stride returns R*SPadded, the number of float64 elements per pattern in
// a partials buffer.
func (a *Arena) Stride() int { return a.stride }

// checkPartialsIndex validates idx against [0, P).
func (a *Arena) checkPartialsIndex(method string, idx int) error {
	if idx < 0 || idx >= len(a.partials) {
		return oobf(method, idx)
	}
	return nil
}

// SetPartials copies values into partials buffer index, expanding K*S
// input across R categories when the Arena's ExpansionMode requires it.
func (a *Arena) SetPartials(index int, values []float64) error {
	if err := a.checkPartialsIndex("SetPartials", index); err != nil {
		return err
	}

	k, r, sp, s := a.spec.PatternCount, a.spec.RateCategoryCount, a.sPadded, a.spec.StateCount
	dst := a.partials[index]

	switch a.spec.Expansion {
	case ExactCategories:
		if len(values) != k*r*s && len(values) != k*r*sp {
			return shapef("SetPartials", len(values), k*r*s)
		}
		a.writeExact(dst, values, k, r, sp, s)
		return nil
	default: // ExpandAcrossCategories
		if len(values) != k*s {
			return shapef("SetPartials", len(values), k*s)
		}
		a.writeExpanded(dst, values, k, r, sp, s)
		return nil
	}
}

// writeExact copies a fully-specified K*R*S (or K*R*SPadded) buffer,
// zero-filling any padding columns.
func (a *Arena) writeExact(dst, values []float64, k, r, sp, s int) {
	srcPadded := len(values) == k*r*sp
	for p := 0; p < k; p++ {
		for c := 0; c < r; c++ {
			base := (p*r + c) * sp
			var srcBase int
			if srcPadded {
				srcBase = (p*r + c) * sp
			} else {
				srcBase = (p*r + c) * s
			}
			for st := 0; st < sp; st++ {
				if st < s {
					dst[base+st] = values[srcBase+st]
				} else {
					dst[base+st] = 0
				}
			}
		}
	}
}

// writeExpanded replicates a K*S buffer across every rate category.
func (a *Arena) writeExpanded(dst, values []float64, k, r, sp, s int) {
	for p := 0; p < k; p++ {
		srcBase := p * s
		for c := 0; c < r; c++ {
			base := (p*r + c) * sp
			for st := 0; st < sp; st++ {
				if st < s {
					dst[base+st] = values[srcBase+st]
				} else {
					dst[base+st] = 0
				}
			}
		}
	}
}

// GetPartials copies buffer index's contents into out. out must be at
// least K*R*SPadded long; only the unpadded K*R*S values are meaningful
// to a caller, but the padded layout is preserved for symmetry with
// SetPartials(ExactCategories, ...).
func (a *Arena) GetPartials(index int, out []float64) error {
	if err := a.checkPartialsIndex("GetPartials", index); err != nil {
		return err
	}
	src := a.partials[index]
	if len(out) < len(src) {
		return shapef("GetPartials", len(out), len(src))
	}
	copy(out, src)
	return nil
}

// Partials returns the raw backing slice for buffer index, for kernel
// internal use (pruning writes, likelihood reads). The returned slice
// aliases Arena storage; callers must not retain it past the Arena's
// lifetime.
func (a *Arena) Partials(index int) ([]float64, error) {
	if err := a.checkPartialsIndex("Partials", index); err != nil {
		return nil, err
	}
	return a.partials[index], nil
}

// ScaleAccumulator returns the length-K log-scale accumulator for
// partials buffer index.
func (a *Arena) ScaleAccumulator(index int) ([]float64, error) {
	if err := a.checkPartialsIndex("ScaleAccumulator", index); err != nil {
		return nil, err
	}
	return a.scale[index], nil
}

// SetTipStates copies K small state codes into compact tip buffer
// tipIndex. Codes must lie in [0, A).
func (a *Arena) SetTipStates(tipIndex int, states []int32) error {
	if tipIndex < 0 || tipIndex >= len(a.tipStates) {
		return oobf("SetTipStates", tipIndex)
	}
	if len(states) != a.spec.PatternCount {
		return shapef("SetTipStates", len(states), a.spec.PatternCount)
	}
	a2 := a.spec.ambiguityCount()
	for _, code := range states {
		if code < 0 || int(code) >= a2 {
			return oobf("SetTipStates.code", int(code))
		}
	}
	copy(a.tipStates[tipIndex], states)
	return nil
}

// TipStates returns the raw state codes for compact tip buffer idx.
func (a *Arena) TipStates(idx int) ([]int32, error) {
	if idx < 0 || idx >= len(a.tipStates) {
		return nil, oobf("TipStates", idx)
	}
	return a.tipStates[idx], nil
}

// SetAmbiguityCode installs the {0,1}-or-fractional weight row for
// ambiguity code (must lie in [S, A)). weights must have length S.
func (a *Arena) SetAmbiguityCode(code int, weights []float64) error {
	s := a.spec.StateCount
	if code < s || code >= a.spec.ambiguityCount() {
		return oobf("SetAmbiguityCode", code)
	}
	if len(weights) != s {
		return shapef("SetAmbiguityCode", len(weights), s)
	}
	row := make([]float64, s)
	copy(row, weights)
	a.ambiguity[code-s] = row
	return nil
}

// TipWeights returns the length-S weight row for tip code: the identity
// row (1 at position code, 0 elsewhere) for an unambiguous state, or the
// installed ambiguity row for code >= S. An unconfigured ambiguity code
// defaults to all-ones (fully ambiguous, e.g. "N").
func (a *Arena) TipWeights(code int32) ([]float64, error) {
	s := a.spec.StateCount
	if code < 0 || int(code) >= a.spec.ambiguityCount() {
		return nil, oobf("TipWeights", int(code))
	}
	if int(code) < s {
		row := make([]float64, s)
		row[code] = 1
		return row, nil
	}
	if row := a.ambiguity[int(code)-s]; row != nil {
		return row, nil
	}
	row := make([]float64, s)
	for i := range row {
		row[i] = 1
	}
	return row, nil
}

// ResolveSource decodes a schedule source index against the combined
// [0, P+C) space: idx < P names a partials buffer, idx >= P names a
// compact tip buffer at offset idx-P.
func (a *Arena) ResolveSource(idx int) (compact bool, offset int, err error) {
	p := len(a.partials)
	c := len(a.tipStates)
	if idx < 0 || idx >= p+c {
		return false, 0, oobf("ResolveSource", idx)
	}
	if idx < p {
		return false, idx, nil
	}
	return true, idx - p, nil
}
