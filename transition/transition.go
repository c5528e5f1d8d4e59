package transition

import (
	"math"

	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/logging"
)

// Build computes, for every edge i in edgeLengths and every rate category
// c of arena's instance, the transition-probability matrix
//
//	P_{i,c} = E · diag(exp(lambda_s * edgeLengths[i] * r_c)) · E^-1
//
// and writes it into matrix buffer probIdx[i] at category offset c. When
// d1Idx (resp. d2Idx) is non-nil, the first (resp. second) derivative
// matrix with respect to edge length is written into d1Idx[i] (resp.
// d2Idx[i]) the same way. rates, if nil, defaults to arena.CategoryRates().
//
// Padded states contribute the identity (via Arena.SetTransitionMatrix);
// a non-finite intermediate anywhere aborts that single (edge, category)
// write and returns an error, without touching the destination slot —
// the remaining (edge, category) pairs are still attempted so a caller
// driving many edges at once gets partial results for the unaffected
// ones.
//
// handle identifies the calling instance for log correlation only; log
// may be nil (Nop logger). Every aborted (edge, category) write logs a
// NumericalFault event.
func Build(arena *buffer.Arena, eigenIndex int, probIdx, d1Idx, d2Idx []int, edgeLengths, rates []float64, handle int, log *logging.Logger) error {
	if log == nil {
		log = logging.Nop()
	}
	eig, err := arena.Eigen(eigenIndex)
	if err != nil {
		return err
	}
	if rates == nil {
		rates = arena.CategoryRates()
	}
	s := arena.Spec().StateCount
	r := arena.Spec().RateCategoryCount

	scratchP := make([]float64, s*s)
	var scratchD1, scratchD2 []float64
	if d1Idx != nil {
		scratchD1 = make([]float64, s*s)
	}
	if d2Idx != nil {
		scratchD2 = make([]float64, s*s)
	}
	diag := make([]float64, s)
	diagD1 := make([]float64, s)
	diagD2 := make([]float64, s)

	var firstErr error
	for i, t := range edgeLengths {
		for c := 0; c < r; c++ {
			rc := rates[c]
			ok := true
			for st := 0; st < s; st++ {
				e := math.Exp(eig.Lambda[st] * t * rc)
				diag[st] = e
				if d1Idx != nil {
					diagD1[st] = eig.Lambda[st] * rc * e
				}
				if d2Idx != nil {
					lr := eig.Lambda[st] * rc
					diagD2[st] = lr * lr * e
				}
				if math.IsNaN(e) || math.IsInf(e, 0) {
					ok = false
				}
			}
			if !ok {
				faultErr := numericalf(i, c)
				if firstErr == nil {
					firstErr = faultErr
				}
				log.NumericalFault(handle, i, c, faultErr)
				continue
			}

			sandwich(eig.E, eig.EInv, diag, s, scratchP)
			if d1Idx != nil {
				sandwich(eig.E, eig.EInv, diagD1, s, scratchD1)
			}
			if d2Idx != nil {
				sandwich(eig.E, eig.EInv, diagD2, s, scratchD2)
			}
			if !allFinite(scratchP) || !allFinite(scratchD1) || !allFinite(scratchD2) {
				faultErr := numericalf(i, c)
				if firstErr == nil {
					firstErr = faultErr
				}
				log.NumericalFault(handle, i, c, faultErr)
				continue
			}
			if err := arena.SetTransitionMatrix(probIdx[i], c, scratchP); err != nil {
				return err
			}

			if d1Idx != nil {
				if err := arena.SetTransitionMatrix(d1Idx[i], c, scratchD1); err != nil {
					return err
				}
			}
			if d2Idx != nil {
				if err := arena.SetTransitionMatrix(d2Idx[i], c, scratchD2); err != nil {
					return err
				}
			}
		}
	}
	return firstErr
}

// sandwich computes out = E * diag(d) * EInv for S*S flattened row-major
// E, EInv, writing into the S*S-length out.
func sandwich(e, eInv, d []float64, s int, out []float64) {
	for row := 0; row < s; row++ {
		for col := 0; col < s; col++ {
			var sum float64
			for k := 0; k < s; k++ {
				sum += e[row*s+k] * d[k] * eInv[k*s+col]
			}
			out[row*s+col] = sum
		}
	}
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
