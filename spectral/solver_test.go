// SPDX-License-Identifier: MIT
package spectral_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/primespectra/curvature"
	"github.com/katalvlaran/primespectra/grid"
	"github.com/katalvlaran/primespectra/operator"
	"github.com/katalvlaran/primespectra/spectral"
)

// testOperator builds a small clamped Hamiltonian on an index grid, the same
// shape the pipeline produces, sized for dense verification.
func testOperator(t *testing.T, n int, clamp float64) *operator.Tridiag {
	t.Helper()

	f := curvature.Field{Support: make([]float64, n), K: make([]float64, n)}
	for i := 0; i < n; i++ {
		f.Support[i] = float64(2*i + 3)
		f.K[i] = 0.3 + 0.1*math.Sin(float64(i)/4.0)
	}

	_, st, rf, err := grid.Build(f, grid.IndexGrid, grid.WithBoundaryClamp(clamp))
	require.NoError(t, err, "grid build must succeed")

	v, err := operator.Potential(rf.K, operator.Linear, 1.0, 0.01)
	require.NoError(t, err, "potential must succeed")

	h, err := operator.Assemble(st, v)
	require.NoError(t, err, "assemble must succeed")

	return h
}

// denseEigen returns all eigenvalues of h ascending via gonum's dense
// symmetric solver — the oracle for the iterative path.
func denseEigen(t *testing.T, h *operator.Tridiag) []float64 {
	t.Helper()

	n := h.Dim()
	rows := h.Dense()
	data := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		data = append(data, rows[i]...)
	}

	var es mat.EigenSym
	require.True(t, es.Factorize(mat.NewSymDense(n, data), false),
		"dense factorization must succeed")

	return es.Values(nil)
}

// TestSmallest_MatchesDenseOracle: the shift-invert path reproduces the
// smallest eigenvalues of the dense solver.
func TestSmallest_MatchesDenseOracle(t *testing.T) {
	h := testOperator(t, 40, grid.DefaultBoundaryClamp)
	want := denseEigen(t, h)

	res, err := spectral.Smallest(h, 5)
	require.NoError(t, err, "extraction must succeed")
	require.Equal(t, 5, res.Converged, "all requested values must converge")
	assert.False(t, res.Partial(), "full convergence expected")

	for i, got := range res.Values {
		assert.InEpsilon(t, want[i], got, 1e-6,
			"eigenvalue %d must match the dense oracle", i)
	}
}

// TestSmallest_SortedAndCapped: Values ascend and the internal count cap at
// dim−2 keeps Requested intact while shortening Values.
func TestSmallest_SortedAndCapped(t *testing.T) {
	h := testOperator(t, 12, grid.DefaultBoundaryClamp)

	res, err := spectral.Smallest(h, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Requested, "Requested keeps the caller's count")
	assert.LessOrEqual(t, res.Converged, 10, "count is capped at dim-2")
	assert.Equal(t, len(res.Values), res.Converged, "Values and Converged agree")
	assert.True(t, isAscending(res.Values), "Values must ascend")
}

// TestSmallest_Deterministic: the fixed start vector makes two runs
// bit-identical.
func TestSmallest_Deterministic(t *testing.T) {
	h := testOperator(t, 40, grid.DefaultBoundaryClamp)

	a, err := spectral.Smallest(h, 6)
	require.NoError(t, err)
	b, err := spectral.Smallest(h, 6)
	require.NoError(t, err)

	assert.Equal(t, a.Values, b.Values, "identical inputs give identical output")
}

// TestSmallest_PartialBudget: a starved iteration budget yields a shorter,
// still sorted Result rather than an error.
func TestSmallest_PartialBudget(t *testing.T) {
	h := testOperator(t, 60, grid.DefaultBoundaryClamp)

	res, err := spectral.Smallest(h, 10, spectral.WithMaxIter(5))
	require.NoError(t, err, "budget exhaustion is not an error")
	assert.True(t, res.Partial(), "5 iterations cannot converge 10 values")
	assert.Less(t, res.Converged, 10)
	assert.True(t, isAscending(res.Values), "partial Values still ascend")
}

// TestSmallest_PathologicalClamp: an extreme boundary clamp stretches the
// spectrum without breaking the partial-result contract.
func TestSmallest_PathologicalClamp(t *testing.T) {
	h := testOperator(t, 60, 1e12)

	res, err := spectral.Smallest(h, 12, spectral.WithMaxIter(6))
	require.NoError(t, err, "a hard operator degrades to a partial result")
	assert.LessOrEqual(t, res.Converged, 12)
	assert.True(t, isAscending(res.Values))
}

// TestSmallest_Sentinels covers the argument contracts.
func TestSmallest_Sentinels(t *testing.T) {
	h := testOperator(t, 20, grid.DefaultBoundaryClamp)

	_, err := spectral.Smallest(nil, 3)
	assert.ErrorIs(t, err, spectral.ErrNilOperator, "nil operator")

	tiny := &operator.Tridiag{Main: []float64{1, 2}, Off: []float64{0.5}}
	_, err = spectral.Smallest(tiny, 1)
	assert.ErrorIs(t, err, spectral.ErrNilOperator, "degenerate dimension")

	_, err = spectral.Smallest(h, 0)
	assert.ErrorIs(t, err, spectral.ErrBadCount, "zero count")

	_, err = spectral.Smallest(h, 3, spectral.WithTol(0))
	assert.ErrorIs(t, err, spectral.ErrBadOption, "non-positive tolerance")

	_, err = spectral.Smallest(h, 3, spectral.WithMaxIter(0))
	assert.ErrorIs(t, err, spectral.ErrBadOption, "non-positive budget")

	_, err = spectral.Smallest(h, 3, spectral.WithDamping(0.9))
	assert.ErrorIs(t, err, spectral.ErrBadOption, "damping below one")
}

// TestBatched_MatchesDenseOracle: the batch driver walks the spectrum with
// a moving shift and never skips or duplicates values.
func TestBatched_MatchesDenseOracle(t *testing.T) {
	h := testOperator(t, 40, grid.DefaultBoundaryClamp)
	want := denseEigen(t, h)

	res, err := spectral.Batched(h, 12, spectral.WithBatchSize(4))
	require.NoError(t, err)
	require.Equal(t, 12, res.Converged, "batched run must reach the target")

	for i, got := range res.Values {
		assert.InEpsilon(t, want[i], got, 1e-6,
			"batched eigenvalue %d must match the dense oracle", i)
	}
}

// TestBatched_CheckpointResume: a pre-seeded checkpoint is trusted as-is and
// only the missing tail is computed.
func TestBatched_CheckpointResume(t *testing.T) {
	h := testOperator(t, 40, grid.DefaultBoundaryClamp)
	want := denseEigen(t, h)

	path := t.TempDir() + "/spectrum.ckpt"
	const key = "resume-test"

	seed := append([]float64(nil), want[:3]...)
	require.NoError(t, spectral.SaveCheckpoint(path, key, seed))

	res, err := spectral.Batched(h, 8,
		spectral.WithBatchSize(4),
		spectral.WithCheckpoint(path, key))
	require.NoError(t, err)
	require.Equal(t, 8, res.Converged)

	assert.Equal(t, seed, res.Values[:3], "checkpointed prefix survives untouched")
	for i := 3; i < 8; i++ {
		assert.InEpsilon(t, want[i], res.Values[i], 1e-6,
			"resumed eigenvalue %d must match the dense oracle", i)
	}

	reloaded := spectral.LoadCheckpoint(path, key)
	assert.Equal(t, res.Values, reloaded, "final checkpoint holds the full run")
}

// TestBatched_Sentinels mirrors the Smallest contracts.
func TestBatched_Sentinels(t *testing.T) {
	h := testOperator(t, 20, grid.DefaultBoundaryClamp)

	_, err := spectral.Batched(nil, 3)
	assert.ErrorIs(t, err, spectral.ErrNilOperator)

	_, err = spectral.Batched(h, -1)
	assert.ErrorIs(t, err, spectral.ErrBadCount)

	_, err = spectral.Batched(h, 3, spectral.WithBatchSize(0))
	assert.ErrorIs(t, err, spectral.ErrBadOption)
}

func isAscending(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}

	return true
}
