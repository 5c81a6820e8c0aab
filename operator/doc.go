// SPDX-License-Identifier: MIT

// Package operator assembles the Schrödinger-like spectral operator
// H = L + diag(V) as a real symmetric tridiagonal matrix.
//
// What:
//
//   - Tridiag: banded symmetric storage (Main, Off) with matrix-vector
//     product and a dense export for small-scale verification.
//   - Potential: elementwise derivation of V from a curvature field —
//     Linear (β·k) or Exponential (exp(α·k)) — with an optional slowly
//     varying ε·log(rank) correction against long-tail drift.
//   - Assemble: H = L + diag(V), failing with ErrDimension when the field
//     and stencil lengths disagree.
//
// Invariants:
//
//   - Symmetric by construction: one Off slice backs both the sub- and
//     super-diagonal, so H == Hᵀ holds for every assembled operator,
//     boundary clamp included.
//   - Assembly is a pure function; inputs are never mutated.
//
// Errors:
//
//   - ErrDimension, ErrUnknownPotential, ErrNilOperator, ErrOutOfRange.
package operator
