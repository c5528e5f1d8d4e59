// Package registry owns the process-wide table of live instances: a
// Handle is a small non-negative integer a caller holds opaquely and
// passes back into every subsequent call. Create walks a backend.Chain
// looking for the first factory willing to allocate the requested
// shape; Finalize releases the backend and returns the handle's slot to
// a free-list for reuse.
//
// Distinct handles are independent and may be driven from separate
// goroutines concurrently; one handle is not safe for concurrent
// mutating calls (the backend each handle owns has no internal
// synchronization of its own beyond pruning's bounded worker pool).
package registry
