package errs

import (
	"errors"
	"fmt"
)

// Code is the stable, small-negative-integer error code returned across
// the public API boundary.
type Code int32

// Error code table, exactly the public API's error codes.
const (
	NoError               Code = 0
	GeneralError          Code = -1
	OutOfMemory           Code = -2
	UnidentifiedException Code = -3
	UninitializedInstance Code = -4
	OutOfRange            Code = -5
)

// Sentinel errors for the five error kinds. Callers branch on these via
// errors.Is; never compare error strings.
var (
	// ErrOutOfMemory indicates a backend failed to allocate a buffer.
	ErrOutOfMemory = errors.New("errs: out of memory")

	// ErrOutOfRange indicates a buffer/eigen/matrix index fell outside its
	// declared range. Range errors are immediate and fatal to the call.
	ErrOutOfRange = errors.New("errs: index out of range")

	// ErrUninitializedInstance indicates a handle does not name a live
	// instance (never created, or already finalized).
	ErrUninitializedInstance = errors.New("errs: uninitialized instance")

	// ErrGeneral indicates a numerical fault (non-finite intermediate) or
	// that no backend factory accepted a create request.
	ErrGeneral = errors.New("errs: general error")

	// ErrUnidentified indicates an unexpected internal backend fault.
	ErrUnidentified = errors.New("errs: unidentified exception")
)

// Numerical builds a general-error numerical fault from format and args
// (typically the offending op/pattern, for diagnostics), wrapping
// ErrGeneral.
func Numerical(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrGeneral)
}

// Internal wraps an unexpected backend fault as ErrUnidentified.
func Internal(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnidentified)
}

// CodeOf translates err into the public error-code table. nil maps to
// NoError. Unrecognized errors map to UnidentifiedException, never leak
// past the API boundary as anything else.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return NoError
	case errors.Is(err, ErrOutOfMemory):
		return OutOfMemory
	case errors.Is(err, ErrOutOfRange):
		return OutOfRange
	case errors.Is(err, ErrUninitializedInstance):
		return UninitializedInstance
	case errors.Is(err, ErrGeneral):
		return GeneralError
	case errors.Is(err, ErrUnidentified):
		return UnidentifiedException
	default:
		return UnidentifiedException
	}
}

// String renders a human-readable name for c, for logging.
func (c Code) String() string {
	switch c {
	case NoError:
		return "NO_ERROR"
	case GeneralError:
		return "GENERAL_ERROR"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case UnidentifiedException:
		return "UNIDENTIFIED_EXCEPTION"
	case UninitializedInstance:
		return "UNINITIALIZED_INSTANCE"
	case OutOfRange:
		return "OUT_OF_RANGE"
	default:
		return "UNKNOWN_ERROR_CODE"
	}
}
