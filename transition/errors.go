package transition

import (
	"fmt"

	"github.com/katalvlaran/gophylo/errs"
)

// numericalf reports a non-finite intermediate at the given edge/category
// as a general-error numerical fault rather than letting NaNs propagate
// into the Arena.
func numericalf(edge, category int) error {
	return errs.Numerical("transition: non-finite result at edge %d category %d", edge, category)
}
