// Package sieve generates ordered prime sequences for the curvature pipeline.
//
// What:
//
//   - Primes(count): the first `count` primes, exactly `count` long.
//   - PrimesUpTo(limit): every prime ≤ limit.
//   - WithOddOnly(): drop 2, producing the ≥3 convention some operator
//     variants expect.
//
// Why:
//
//   - Every downstream stage (curvature field, grid, operator) consumes a
//     strictly increasing, immutable prime sequence; this package is the only
//     producer.
//
// Algorithm:
//
//   - Classic Eratosthenes over a working limit estimated from the
//     prime-counting asymptotic n·(ln n + ln ln n). If the estimate
//     undershoots, the limit grows geometrically (×1.5) and the sieve is
//     retried until the requested count is met. The undershoot retry is
//     internal and never surfaces to callers.
//
// Complexity:
//
//   - Time O(L log log L), Memory O(L) for the boolean sieve, where L is the
//     working limit.
//
// Errors:
//
//   - ErrCount: requested count is not positive.
package sieve
