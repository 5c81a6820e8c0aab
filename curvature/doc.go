// Package curvature derives scalar "curvature" fields from the local
// compositeness density of the integers, the potential source for the
// spectral operator.
//
// What:
//
//   - OnPrimes: the κ-field sampled at prime locations —
//     ρ = composite fraction in [p−R, p+R], σ = log(1 + ρ·log p),
//     k = c·σ³·√ρ.
//   - OnIntegers: the log-log field sampled on an integer range —
//     k = scale·(log log(n+shift) + mix·ρ)^q·√(ρ+ε).
//   - Pure transforms on a built Field: Smooth, Downsample, TailCorrection,
//     Perturb. Each returns a fresh Field; a Field is never mutated after
//     construction.
//
// Why:
//
//   - The field encodes local irregularity of the prime distribution; scaled
//     into a diagonal potential it drives the spectral correspondence the
//     rest of the pipeline probes.
//
// Performance:
//
//   - Window densities use a prefix sum over the compositeness mask, giving
//     amortized O(1) per sample. This is the dominant step at tens of
//     millions of integers and must never degrade to O(N·R).
//
// Determinism:
//
//   - No ambient randomness. Perturb takes an explicit seed; identical inputs
//     yield bit-identical output.
//
// Errors:
//
//   - ErrNoPrimes, ErrNotIncreasing, ErrWindowRadius, ErrRange,
//     ErrSmoothWindow, ErrStride, ErrPerturb.
package curvature
