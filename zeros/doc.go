// SPDX-License-Identifier: MIT

// Package zeros provides the reference sequence the fitted models are scored
// against: the imaginary parts of the non-trivial Riemann zeta zeros.
//
// What:
//
//   - Provider: the rank → ordinate lookup interface (1-based ranks).
//   - Table: the embedded built-in provider covering the first 78 ordinates.
//   - Cached: a memoizing wrapper for providers whose Zero is expensive.
//   - Sequence: collect the first n ordinates from any provider.
//
// The embedded table is enough for every fit/eval window the pipeline uses
// by default; a caller with a longer zero list plugs in its own Provider.
//
// Errors:
//
//   - ErrRank for ranks below 1, ErrExhausted for ranks past the provider's
//     reach.
package zeros
