// Package errs defines the error taxonomy shared by every package that
// crosses the phylo API boundary.
//
// Errors fall into five kinds, matching the engine's error-handling design:
//
//   - allocation   -> ErrOutOfMemory
//   - range        -> ErrOutOfRange (immediate, fatal to the call)
//   - uninitialised -> ErrUninitializedInstance (unknown handle)
//   - numerical    -> ErrGeneral (non-finite intermediate; caller sees a
//     code, the schedule continues for unaffected patterns)
//   - internal     -> ErrUnidentified (unexpected backend fault)
//
// Callers MUST use errors.Is against the sentinels below; sentinels are
// never wrapped with a formatted string at their definition site. CodeOf
// translates any error into the stable int32 Code table of the
// public API (NO_ERROR=0, GENERAL_ERROR, OUT_OF_MEMORY,
// UNIDENTIFIED_EXCEPTION, UNINITIALIZED_INSTANCE, OUT_OF_RANGE).
package errs
