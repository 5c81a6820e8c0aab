package sieve

import (
	"errors"
	"math"
)

// ErrCount is returned when a non-positive prime count is requested.
var ErrCount = errors.New("sieve: count must be > 0")

// Default estimation constants; see nthPrimeBound.
const (
	// minEstimateCount is the count below which the asymptotic bound is unreliable.
	minEstimateCount = 6

	// minEstimateLimit covers the first minEstimateCount primes (2..13).
	minEstimateLimit = 15

	// estimateSlack is a small additive cushion on top of the asymptotic bound.
	estimateSlack = 10

	// growthFactor regrows the working limit when the sieve undershoots.
	growthFactor = 1.5
)

// Option mutates sieve options. Safe to apply repeatedly.
type Option func(*options)

type options struct {
	oddOnly bool
}

// WithOddOnly omits 2 from the output, yielding the ≥3 prime convention.
func WithOddOnly() Option {
	return func(o *options) { o.oddOnly = true }
}

// Primes returns the first count primes in strictly increasing order.
//
// Contracts:
//   - count > 0, else ErrCount.
//   - The result has exactly count entries; an undershooting working limit is
//     regrown (×growthFactor) and the sieve retried, bounded only by memory.
//   - Deterministic: identical inputs always yield identical output.
//
// Complexity: O(L log log L) time, O(L) memory, L = working limit.
func Primes(count int, opts ...Option) ([]int, error) {
	if count <= 0 {
		return nil, ErrCount
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Under the odd-only convention we still need count primes after dropping 2.
	need := count
	if o.oddOnly {
		need = count + 1
	}

	limit := nthPrimeBound(need)
	for {
		primes := eratosthenes(limit)
		if len(primes) >= need {
			if o.oddOnly {
				primes = primes[1:]
			}

			return primes[:count], nil
		}

		// Undershoot: regrow and retry. Never surfaced.
		limit = int(float64(limit) * growthFactor)
	}
}

// PrimesUpTo returns every prime ≤ limit in increasing order.
// For limit < 2 the result is empty (never nil error).
func PrimesUpTo(limit int) []int {
	if limit < 2 {
		return []int{}
	}

	return eratosthenes(limit)
}

// nthPrimeBound estimates an upper bound for the n-th prime from the
// asymptotic n·(ln n + ln ln n), with a fixed floor for tiny n.
func nthPrimeBound(n int) int {
	if n < minEstimateCount {
		return minEstimateLimit
	}

	fn := float64(n)

	return int(fn*(math.Log(fn)+math.Log(math.Log(fn)))) + estimateSlack
}

// eratosthenes sieves [0, limit] and returns all primes found.
func eratosthenes(limit int) []int {
	composite := make([]bool, limit+1)
	for p := 2; p*p <= limit; p++ {
		if composite[p] {
			continue
		}
		for m := p * p; m <= limit; m += p {
			composite[m] = true
		}
	}

	// π(x) < x/(ln x − 1.1) for x ≥ 60 keeps this close; a simple count pass
	// is cheap relative to the marking pass and avoids reallocation.
	n := 0
	for v := 2; v <= limit; v++ {
		if !composite[v] {
			n++
		}
	}

	primes := make([]int, 0, n)
	for v := 2; v <= limit; v++ {
		if !composite[v] {
			primes = append(primes, v)
		}
	}

	return primes
}

// CompositeMask returns a boolean mask over [0, limit] where mask[i] reports
// that i is composite. Entries 0 and 1 are neither prime nor composite and
// are left false, matching the curvature builder's window semantics.
func CompositeMask(limit int) []bool {
	mask := make([]bool, limit+1)
	for p := 2; p*p <= limit; p++ {
		if mask[p] {
			continue
		}
		for m := p * p; m <= limit; m += p {
			mask[m] = true
		}
	}

	return mask
}
