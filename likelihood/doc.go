// Package likelihood implements the Likelihood Integrator: turning root or
// edge partial-likelihood buffers into per-pattern log-likelihoods, and
// optionally their first and second derivatives with respect to edge
// length.
//
// Root integration, for group g and pattern p:
//
//	L[g,p]   = Σ_c weights[g,c] · Σ_j frequencies[g,j] · partials[p,c,j]
//	out[g,p] = log(L[g,p]) + scaleAccumulator[p]
//
// Edge integration, for one (parent, child, matrix) triple:
//
//	L[p]   = Σ_c w_c Σ_j π_j Σ_k parent[p,c,j] · M[c,j,k] · child[p,c,k]
//	L'[p]  = same with M' in place of M
//	L''[p] = same with M'' in place of M
//	out  = log(L) + scale
//	outD1 = L'/L
//	outD2 = L''/L - (L'/L)^2
//
// A pattern with L = 0 maps to out = -Inf; its derivative outputs are the
// general-error sentinel (NaN) rather than a division by zero.
package likelihood
