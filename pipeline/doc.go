// SPDX-License-Identifier: MIT

// Package pipeline chains the stages of the prime-curvature spectral
// experiment into one run: sieve → curvature field → optional transforms →
// grid discretization → operator assembly → eigenvalue extraction →
// parametric fit against the reference ordinates → evaluation.
//
// What:
//
//   - Config: every knob of the chain in one validated value, with
//     Default() mirroring the canonical experiment setup.
//   - Run / RunWithPrimes: execute the chain under a context, logging
//     stage progress and timing through zap; RunWithPrimes skips the sieve
//     for callers that share one prime set across many runs.
//   - Report: the run outcome — spectrum, fitted coefficients, error
//     score, and per-stage wall time.
//
// Failure semantics: every stage error is wrapped with the stage name
// ("curvature: …"), so a caller prints exactly which stage failed. A
// partially converged spectrum is not an error; the fit clamps to the
// converged prefix and the Report carries the partial Result as-is.
//
// Errors:
//
//   - ErrConfig for invalid configuration (wraps the field name),
//     stage-wrapped errors from the underlying packages otherwise.
package pipeline
