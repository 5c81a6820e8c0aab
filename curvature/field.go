package curvature

import (
	"math"

	"github.com/katalvlaran/primespectra/sieve"
)

// OnPrimes builds the κ-field sampled at prime locations.
//
// For each prime p with a full window [p−R, p+R] inside the sieved range:
//
//	ρ = composite fraction of the window
//	σ = log(1 + ρ·log p)
//	k = c·σ³·√ρ
//
// Primes whose window falls outside [2, max(p)+R] are trimmed from the
// output, so the result may be shorter than the input. Support holds the
// surviving prime values.
//
// Contracts:
//   - primes non-empty and strictly increasing, else ErrNoPrimes /
//     ErrNotIncreasing.
//   - window radius > 0, else ErrWindowRadius.
//
// Complexity: O(M log log M + P) where M = max(p)+R and P = len(primes);
// windows cost amortized O(1) via a prefix sum over the compositeness mask.
func OnPrimes(primes []int, opts ...Option) (Field, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validatePrimes(primes); err != nil {
		return Field{}, err
	}
	if o.windowRadius <= 0 {
		return Field{}, ErrWindowRadius
	}

	r := o.windowRadius
	maxN := primes[len(primes)-1] + r + maskPad

	// Stage 1 - compositeness mask and its prefix sum.
	cum := compositePrefix(maxN)

	// Stage 2 - windowed density per prime, edge-trimmed.
	support := make([]float64, 0, len(primes))
	k := make([]float64, 0, len(primes))
	for _, p := range primes {
		lo, hi := p-r, p+r
		if lo < 2 || hi > maxN {
			continue
		}

		rho := float64(cum[hi+1]-cum[lo]) / float64(hi-lo+1)
		sigma := math.Log(1.0 + rho*math.Log(float64(p)))
		kn := o.curvatureC * sigma * sigma * sigma * math.Sqrt(rho)

		support = append(support, float64(p))
		k = append(k, kn)
	}

	return Field{Support: support, K: k}, nil
}

// OnIntegers builds the log-log field on the integer support grid [n0, n1].
//
// For each n, ρ(n) is the composite fraction of [n−R, n+R] clamped to the
// sieved range, and
//
//	k(n) = scale·(log log(n+shift) + mix·ρ)^q·√(ρ+ε)
//
// Unlike OnPrimes, edge windows are clamped rather than trimmed, so the
// output covers the whole requested range.
//
// Contracts:
//   - 2 ≤ n0 ≤ n1, else ErrRange.
//   - window radius > 0, else ErrWindowRadius.
//
// Complexity: O(M log log M + N), M = n1+R, N = n1−n0+1.
func OnIntegers(n0, n1 int, opts ...Option) (Field, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if n0 < 2 || n1 < n0 {
		return Field{}, ErrRange
	}
	if o.windowRadius <= 0 {
		return Field{}, ErrWindowRadius
	}

	r := o.windowRadius
	maxN := n1 + r
	cum := compositePrefix(maxN)

	n := n1 - n0 + 1
	support := make([]float64, n)
	k := make([]float64, n)
	for i := 0; i < n; i++ {
		v := n0 + i
		lo := max(2, v-r)
		hi := min(maxN, v+r)

		rho := float64(cum[hi+1]-cum[lo]) / float64(hi-lo+1)
		term := math.Log(math.Log(float64(v)+o.logLogShift)) + o.densityMix*rho

		support[i] = float64(v)
		k[i] = o.scale * math.Pow(term, o.exponent) * math.Sqrt(rho+densityFloor)
	}

	return Field{Support: support, K: k}, nil
}

// compositePrefix returns cum where cum[i] counts composites in [0, i).
// cum[hi+1]-cum[lo] is then the composite count of [lo, hi].
func compositePrefix(limit int) []int {
	mask := sieve.CompositeMask(limit)
	cum := make([]int, len(mask)+1)
	for i, c := range mask {
		cum[i+1] = cum[i]
		if c {
			cum[i+1]++
		}
	}

	return cum
}

func validatePrimes(primes []int) error {
	if len(primes) == 0 {
		return ErrNoPrimes
	}
	for i := 1; i < len(primes); i++ {
		if primes[i] <= primes[i-1] {
			return ErrNotIncreasing
		}
	}

	return nil
}
