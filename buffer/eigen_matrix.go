package buffer

// SetEigenDecomposition installs the (E, E^-1, lambda) triple for model
// slot index. E and EInv must each have length S*S; lambda must have
// length S.
func (a *Arena) SetEigenDecomposition(index int, e, eInv, lambda []float64) error {
	if index < 0 || index >= len(a.eigens) {
		return oobf("SetEigenDecomposition", index)
	}
	s := a.spec.StateCount
	if len(e) != s*s {
		return shapef("SetEigenDecomposition.E", len(e), s*s)
	}
	if len(eInv) != s*s {
		return shapef("SetEigenDecomposition.EInv", len(eInv), s*s)
	}
	if len(lambda) != s {
		return shapef("SetEigenDecomposition.Lambda", len(lambda), s)
	}

	eig := Eigen{
		E:      append([]float64(nil), e...),
		EInv:   append([]float64(nil), eInv...),
		Lambda: append([]float64(nil), lambda...),
	}
	a.eigens[index] = eig
	return nil
}

// Eigen returns the installed eigendecomposition for slot index.
func (a *Arena) Eigen(index int) (Eigen, error) {
	if index < 0 || index >= len(a.eigens) {
		return Eigen{}, oobf("Eigen", index)
	}
	return a.eigens[index], nil
}

// SetTransitionMatrix installs a precomputed S*S matrix directly into
// matrix buffer index at rate-category offset category, bypassing
// transition.Build. Padded rows/columns are filled with the identity
// contribution (1 on the padded diagonal, 0 elsewhere) so padded compute
// stays numerically inert.
func (a *Arena) SetTransitionMatrix(index, category int, values []float64) error {
	if index < 0 || index >= len(a.matrices) {
		return oobf("SetTransitionMatrix", index)
	}
	if category < 0 || category >= a.spec.RateCategoryCount {
		return oobf("SetTransitionMatrix.category", category)
	}
	s, sp := a.spec.StateCount, a.sPadded
	if len(values) != s*s {
		return shapef("SetTransitionMatrix", len(values), s*s)
	}

	dst := a.matrices[index]
	base := category * sp * sp
	for row := 0; row < sp; row++ {
		for col := 0; col < sp; col++ {
			var v float64
			switch {
			case row < s && col < s:
				v = values[row*s+col]
			case row == col:
				v = 1 // padded diagonal: identity contribution
			default:
				v = 0
			}
			dst[base+row*sp+col] = v
		}
	}
	return nil
}

// Matrix returns the raw flattened R*SPadded*SPadded backing slice for
// matrix buffer idx, for kernel internal use.
func (a *Arena) Matrix(idx int) ([]float64, error) {
	if idx < 0 || idx >= len(a.matrices) {
		return nil, oobf("Matrix", idx)
	}
	return a.matrices[idx], nil
}

// MatrixCategory returns the S_padded x S_padded slice (flattened,
// row-major) for matrix buffer idx at rate category c.
func (a *Arena) MatrixCategory(idx, c int) ([]float64, error) {
	m, err := a.Matrix(idx)
	if err != nil {
		return nil, err
	}
	if c < 0 || c >= a.spec.RateCategoryCount {
		return nil, oobf("MatrixCategory.category", c)
	}
	sp := a.sPadded
	base := c * sp * sp
	return m[base : base+sp*sp], nil
}
