// Package backend defines the Backend Factory Chain: the capability
// interface every compute backend implements, and the ordered list of
// factories the registry consults on create.
//
// Each Factory advertises a name and a capability bitset (Flags) and
// attempts CreateImpl for a given buffer shape on a given Resource; it
// returns ErrDeclined when it cannot serve the request — no device,
// insufficient memory, unsupported state count. Chain.Create walks
// factories left to right and returns the first success, matching the
// "first factory to successfully allocate wins" rule. Any other error
// from CreateImpl (the cpu and cpuvector factories pass on
// buffer.NewArena's error for an invalid shape) ends the walk and is
// returned as is.
//
// registry.DefaultChain places vectorized CPU ahead of scalar CPU, since the
// vectorized path is strictly a performance improvement over scalar with
// no capability the scalar path lacks.
package backend
