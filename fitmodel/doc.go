// SPDX-License-Identifier: MIT

// Package fitmodel fits parametric maps from a computed spectrum onto a
// reference sequence and scores the fit in relative-percentage terms.
//
// What:
//
//   - Model: the three candidate forms — Affine (γ ≈ a·λ + b),
//     AffineLogIndex (γ ≈ a·λ + c·log n + b, n 1-based) and
//     AffineLogEigen (γ ≈ a·λ + c·log λ + b).
//   - Fit: least-squares coefficients over the common prefix of spectrum
//     and reference, solved through gonum's QR path.
//   - Evaluate: mean and max relative error (percent) of a fitted model
//     over a prefix, reporting how many levels were actually usable.
//
// Why least squares and not anything fancier: the maps are linear in their
// coefficients, so the normal problem is exactly a tall Dense.Solve.
//
// Edge cases:
//
//   - fitN/evalN beyond the available data clamp to the common prefix and
//     flag the clamp rather than failing.
//   - Fewer than two usable levels cannot determine any of the models:
//     ErrInsufficientSamples.
//   - AffineLogEigen needs strictly positive eigenvalues on the prefix;
//     a non-positive λ makes log λ meaningless and is rejected the same way.
//
// Errors:
//
//   - ErrModelUnknown, ErrInsufficientSamples.
package fitmodel
