// Package transition implements the Transition-Matrix Builder: batched
// exponentiation of a cached eigendecomposition into per-edge,
// per-rate-category transition-probability matrices (and, optionally,
// their first and second derivatives with respect to edge length).
//
// For edge i and category c:
//
//	P_{i,c}   = E · diag(exp(lambda_s * t_i * r_c))_{s} · E^-1
//	P'_{i,c}  = E · diag(lambda_s * r_c * exp(lambda_s * t_i * r_c)) · E^-1
//	P''_{i,c} = E · diag((lambda_s * r_c)^2 * exp(lambda_s * t_i * r_c)) · E^-1
//
// Build stages every matrix into a scratch buffer first and only commits
// it to the Arena once every entry is finite, so a numerical fault never
// leaves a partially-written or NaN-filled matrix behind: stage the
// working copy, only replace state once the computation finishes cleanly.
package transition
