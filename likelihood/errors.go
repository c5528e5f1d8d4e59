package likelihood

import (
	"fmt"

	"github.com/katalvlaran/gophylo/errs"
)

func rangef(call, field string, idx int) error {
	return fmt.Errorf("likelihood: %s.%s=%d: %w", call, field, idx, errs.ErrOutOfRange)
}

func shapef(call, field string, got, want int) error {
	return fmt.Errorf("likelihood: %s.%s has length %d, want %d: %w", call, field, got, want, errs.ErrGeneral)
}
