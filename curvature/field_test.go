package curvature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primespectra/curvature"
	"github.com/katalvlaran/primespectra/sieve"
)

// bruteCompositeFraction recomputes ρ by scanning the window directly.
// Mirrors the fast prefix-sum path and exists only as a test oracle.
func bruteCompositeFraction(mask []bool, lo, hi int) float64 {
	count := 0
	for v := lo; v <= hi; v++ {
		if mask[v] {
			count++
		}
	}

	return float64(count) / float64(hi-lo+1)
}

// TestOnPrimes_MatchesBruteForce verifies the sliding-window density against
// a direct O(N·R) recomputation of the same formula.
func TestOnPrimes_MatchesBruteForce(t *testing.T) {
	const (
		nPrimes = 500
		radius  = 20
		c       = 0.150
	)

	primes, err := sieve.Primes(nPrimes)
	require.NoError(t, err)

	field, err := curvature.OnPrimes(primes, curvature.WithWindowRadius(radius))
	require.NoError(t, err)
	require.NotZero(t, field.Len())

	maxN := primes[len(primes)-1] + radius + 5
	mask := sieve.CompositeMask(maxN)

	i := 0
	for _, p := range primes {
		lo, hi := p-radius, p+radius
		if lo < 2 || hi > maxN {
			continue
		}

		rho := bruteCompositeFraction(mask, lo, hi)
		sigma := math.Log(1.0 + rho*math.Log(float64(p)))
		want := c * sigma * sigma * sigma * math.Sqrt(rho)

		require.Less(t, i, field.Len())
		assert.Equal(t, float64(p), field.Support[i])
		assert.InDelta(t, want, field.K[i], 1e-12, "prime %d", p)
		i++
	}
	assert.Equal(t, field.Len(), i, "all surviving primes accounted for")
}

// TestOnPrimes_EdgeTrimming: primes whose window reaches below 2 are dropped.
func TestOnPrimes_EdgeTrimming(t *testing.T) {
	primes, err := sieve.Primes(100)
	require.NoError(t, err)

	field, err := curvature.OnPrimes(primes, curvature.WithWindowRadius(20))
	require.NoError(t, err)

	// 2,3,5,7,11,13,17,19 have lo = p-20 < 2 and must be trimmed.
	require.NotZero(t, field.Len())
	assert.GreaterOrEqual(t, field.Support[0], 23.0)
	assert.Less(t, field.Len(), len(primes))
}

// TestOnPrimes_Deterministic: two identical runs are bit-identical.
func TestOnPrimes_Deterministic(t *testing.T) {
	primes, err := sieve.Primes(300)
	require.NoError(t, err)

	a, err := curvature.OnPrimes(primes)
	require.NoError(t, err)
	b, err := curvature.OnPrimes(primes)
	require.NoError(t, err)

	assert.Equal(t, a.Support, b.Support)
	assert.Equal(t, a.K, b.K)
}

// TestOnPrimes_Sentinels covers the input contracts.
func TestOnPrimes_Sentinels(t *testing.T) {
	_, err := curvature.OnPrimes(nil)
	assert.ErrorIs(t, err, curvature.ErrNoPrimes)

	_, err = curvature.OnPrimes([]int{5, 3, 7})
	assert.ErrorIs(t, err, curvature.ErrNotIncreasing)

	_, err = curvature.OnPrimes([]int{101, 103}, curvature.WithWindowRadius(0))
	assert.ErrorIs(t, err, curvature.ErrWindowRadius)
}

// TestOnIntegers_CoversRange: integer fields clamp edge windows instead of
// trimming, so the support covers the whole requested range.
func TestOnIntegers_CoversRange(t *testing.T) {
	field, err := curvature.OnIntegers(2, 501)
	require.NoError(t, err)

	require.Equal(t, 500, field.Len())
	assert.Equal(t, 2.0, field.Support[0])
	assert.Equal(t, 501.0, field.Support[499])

	for i, k := range field.K {
		assert.False(t, math.IsNaN(k) || math.IsInf(k, 0), "k[%d] finite", i)
		assert.GreaterOrEqual(t, k, 0.0, "k[%d] non-negative", i)
	}
}

// TestOnIntegers_Sentinels covers the range contract.
func TestOnIntegers_Sentinels(t *testing.T) {
	_, err := curvature.OnIntegers(1, 10)
	assert.ErrorIs(t, err, curvature.ErrRange)

	_, err = curvature.OnIntegers(10, 9)
	assert.ErrorIs(t, err, curvature.ErrRange)
}

// TestSupportStrictlyIncreasing holds for both builders.
func TestSupportStrictlyIncreasing(t *testing.T) {
	primes, err := sieve.Primes(200)
	require.NoError(t, err)

	onP, err := curvature.OnPrimes(primes)
	require.NoError(t, err)
	onI, err := curvature.OnIntegers(2, 200)
	require.NoError(t, err)

	for _, f := range []curvature.Field{onP, onI} {
		for i := 1; i < f.Len(); i++ {
			require.Greater(t, f.Support[i], f.Support[i-1])
		}
	}
}
