// SPDX-License-Identifier: MIT

// Package sweep drives the pipeline across a range of one parameter and
// collects the error score per point.
//
// What:
//
//   - Param: which knob varies — PrimeCount, Beta or Eta.
//   - Run: one pipeline execution per value, fanned out over a bounded
//     errgroup worker pool; when the prime count is not the swept knob the
//     prime set is sieved once and shared read-only by every point.
//   - ResultTable: rows strictly in input order, per-point failures
//     recorded in Row.Err without aborting the rest; Best() picks the
//     lowest mean error among the successful rows.
//
// Errors:
//
//   - ErrNoValues, ErrUnknownParam; Run itself fails only on setup
//     (validation, shared sieve) or context cancellation.
package sweep
