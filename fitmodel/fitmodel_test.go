// SPDX-License-Identifier: MIT
package fitmodel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primespectra/fitmodel"
)

func syntheticEigs(n int) []float64 {
	eigs := make([]float64, n)
	for i := range eigs {
		eigs[i] = 2.0 + 1.7*float64(i) + 0.05*math.Sin(float64(i))
	}

	return eigs
}

// TestFit_AffineRoundTrip: refs generated as 3·λ+7 must recover the exact
// coefficients and score zero error.
func TestFit_AffineRoundTrip(t *testing.T) {
	eigs := syntheticEigs(30)
	refs := make([]float64, len(eigs))
	for i, e := range eigs {
		refs[i] = 3*e + 7
	}

	c, err := fitmodel.Fit(eigs, refs, 20, fitmodel.Affine)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, c.A, 1e-6, "slope recovers exactly")
	assert.InDelta(t, 7.0, c.B, 1e-6, "intercept recovers exactly")

	ev, err := fitmodel.Evaluate(eigs, refs, c, 30)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ev.MeanPct, 1e-8, "synthetic data fits with zero error")
	assert.InDelta(t, 0.0, ev.MaxPct, 1e-8)
	assert.Equal(t, 30, ev.Used)
	assert.False(t, ev.Clamped)
}

// TestFit_LogIndexRoundTrip: the three-column model recovers a, c, b from
// refs = 2·λ + 5·log(n) + 1.
func TestFit_LogIndexRoundTrip(t *testing.T) {
	eigs := syntheticEigs(40)
	refs := make([]float64, len(eigs))
	for i, e := range eigs {
		refs[i] = 2*e + 5*math.Log(float64(i+1)) + 1
	}

	c, err := fitmodel.Fit(eigs, refs, 40, fitmodel.AffineLogIndex)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, c.A, 1e-6)
	assert.InDelta(t, 5.0, c.C, 1e-6)
	assert.InDelta(t, 1.0, c.B, 1e-6)
}

// TestFit_LogEigenRoundTrip mirrors the log-λ form.
func TestFit_LogEigenRoundTrip(t *testing.T) {
	eigs := syntheticEigs(40)
	refs := make([]float64, len(eigs))
	for i, e := range eigs {
		refs[i] = 1.5*e - 2*math.Log(e) + 4
	}

	c, err := fitmodel.Fit(eigs, refs, 40, fitmodel.AffineLogEigen)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, c.A, 1e-6)
	assert.InDelta(t, -2.0, c.C, 1e-6)
	assert.InDelta(t, 4.0, c.B, 1e-6)
}

// TestEvaluate_Clamping: a prefix beyond the data shortens and flags.
func TestEvaluate_Clamping(t *testing.T) {
	eigs := syntheticEigs(10)
	refs := make([]float64, 6)
	for i := range refs {
		refs[i] = 3*eigs[i] + 7
	}

	c, err := fitmodel.Fit(eigs, refs, 100, fitmodel.Affine)
	require.NoError(t, err, "fitN clamps to the common prefix")

	ev, err := fitmodel.Evaluate(eigs, refs, c, 100)
	require.NoError(t, err)
	assert.Equal(t, 6, ev.Used, "evaluation covers the common prefix only")
	assert.True(t, ev.Clamped)
}

// TestFit_Sentinels covers the failure contracts.
func TestFit_Sentinels(t *testing.T) {
	eigs := syntheticEigs(10)
	refs := []float64{14.13}

	_, err := fitmodel.Fit(eigs, refs, 10, fitmodel.Affine)
	assert.ErrorIs(t, err, fitmodel.ErrInsufficientSamples, "one usable level")

	_, err = fitmodel.Fit(eigs, eigs, 10, fitmodel.Model(99))
	assert.ErrorIs(t, err, fitmodel.ErrModelUnknown)

	_, err = fitmodel.Fit([]float64{-1, 2, 3}, []float64{1, 2, 3}, 3, fitmodel.AffineLogEigen)
	assert.ErrorIs(t, err, fitmodel.ErrInsufficientSamples,
		"log-eigen rejects non-positive eigenvalues")
}

// TestParseModel: tokens round-trip through String.
func TestParseModel(t *testing.T) {
	for _, m := range []fitmodel.Model{
		fitmodel.Affine, fitmodel.AffineLogIndex, fitmodel.AffineLogEigen,
	} {
		got, err := fitmodel.ParseModel(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := fitmodel.ParseModel("quadratic")
	assert.ErrorIs(t, err, fitmodel.ErrModelUnknown)
}
