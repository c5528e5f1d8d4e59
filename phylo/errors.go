package phylo

import (
	"fmt"

	"github.com/katalvlaran/gophylo/errs"
)

// guard recovers a panic inside fn and reports it as an unidentified
// exception, so a fault inside a backend or arena method never crosses
// the package boundary as anything but an error value.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("phylo: recovered panic: %v: %w", r, errs.ErrUnidentified)
		}
	}()
	return fn()
}
