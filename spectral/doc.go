// SPDX-License-Identifier: MIT

// Package spectral extracts the lowest eigenvalues of a symmetric
// tridiagonal operator via shift-invert Lanczos iteration.
//
// What:
//
//   - Smallest: the K algebraically smallest eigenvalues nearest the shift,
//     sorted ascending.
//   - Batched: resumable extraction of large K in batches, reusing the last
//     converged eigenvalue (damped) as the next shift, with an atomic
//     on-disk checkpoint between batches.
//
// Method:
//
//	The operator is factored once per shift as LDLᵀ of (H − σI); each
//	Lanczos step applies (H − σI)⁻¹ by two triangular sweeps. The Lanczos
//	tridiagonal is diagonalized by implicit-shift QL after every step, and a
//	Ritz value counts as converged once it stabilizes within the configured
//	tolerance across consecutive steps. Converged Ritz values θ map back to
//	operator eigenvalues λ = σ + 1/θ.
//
// Failure semantics:
//
//	Non-convergence within the iteration budget is NOT an error: the Result
//	carries whatever eigenvalues did converge (sorted, possibly fewer than
//	requested) together with Converged/Requested counts, so callers detect
//	partial extraction by inspection instead of recovering from a panic or
//	sentinel. Errors are reserved for contract violations (nil operator,
//	bad count) and an unusable shift that survives renudging.
//
// Checkpoints:
//
//	A checkpoint holds the ordered converged eigenvalues under a caller
//	supplied key identifying the operator configuration. Writes go through a
//	temp file and rename, so a crash mid-batch never leaves a truncated file
//	a resume would trust. Unreadable or mismatched checkpoints load as empty.
package spectral
