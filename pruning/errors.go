package pruning

import (
	"fmt"

	"github.com/katalvlaran/gophylo/errs"
)

// rangef wraps errs.ErrOutOfRange for a bad operation index; callers
// treat these as immediate and fatal to the whole Run call.
func rangef(opIndex int, field string, idx int) error {
	return fmt.Errorf("pruning: op[%d].%s=%d: %w", opIndex, field, idx, errs.ErrOutOfRange)
}

// numericalf wraps errs.ErrGeneral for a non-finite or negative partial
// produced by one operation; Run continues the remaining schedule.
func numericalf(opIndex, pattern int) error {
	return errs.Numerical("pruning: op[%d] pattern %d produced a non-finite or negative partial", opIndex, pattern)
}
