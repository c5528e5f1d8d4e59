package buffer

import (
	"fmt"

	"github.com/katalvlaran/gophylo/errs"
)

// oobf wraps errs.ErrOutOfRange with the offending call and index, so
// callers get a precise message while still matching via errors.Is.
func oobf(method string, index int) error {
	return fmt.Errorf("buffer.%s: index %d out of range: %w", method, index, errs.ErrOutOfRange)
}

// shapef wraps errs.ErrGeneral for a length/shape mismatch, e.g. a values
// slice that does not match K*S or K*R*S.
func shapef(method string, got, want int) error {
	return fmt.Errorf("buffer.%s: got length %d, want %d: %w", method, got, want, errs.ErrGeneral)
}
