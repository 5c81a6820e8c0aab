package curvature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primespectra/curvature"
)

func stubField(n int) curvature.Field {
	f := curvature.Field{
		Support: make([]float64, n),
		K:       make([]float64, n),
	}
	for i := 0; i < n; i++ {
		f.Support[i] = float64(i + 2)
		f.K[i] = math.Sin(float64(i)/7.0) + 2.0
	}

	return f
}

// TestSmooth_Interior: interior points equal the plain window mean.
func TestSmooth_Interior(t *testing.T) {
	f := stubField(50)
	out, err := f.Smooth(5)
	require.NoError(t, err)
	require.Equal(t, f.Len(), out.Len())

	for i := 2; i < f.Len()-2; i++ {
		want := (f.K[i-2] + f.K[i-1] + f.K[i] + f.K[i+1] + f.K[i+2]) / 5.0
		assert.InDelta(t, want, out.K[i], 1e-12, "index %d", i)
	}

	// Edges are damped: partial overlap still divided by the full window.
	want0 := (f.K[0] + f.K[1] + f.K[2]) / 5.0
	assert.InDelta(t, want0, out.K[0], 1e-12)
}

// TestSmooth_Sentinels: even or unit windows are rejected.
func TestSmooth_Sentinels(t *testing.T) {
	f := stubField(10)

	_, err := f.Smooth(4)
	assert.ErrorIs(t, err, curvature.ErrSmoothWindow)

	_, err = f.Smooth(1)
	assert.ErrorIs(t, err, curvature.ErrSmoothWindow)

	_, err = curvature.Field{}.Smooth(3)
	assert.ErrorIs(t, err, curvature.ErrEmptyField)
}

// TestDownsample keeps every stride-th sample of support and K together.
func TestDownsample(t *testing.T) {
	f := stubField(10)

	out, err := f.Downsample(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{f.Support[0], f.Support[3], f.Support[6], f.Support[9]}, out.Support)
	assert.Equal(t, []float64{f.K[0], f.K[3], f.K[6], f.K[9]}, out.K)

	same, err := f.Downsample(1)
	require.NoError(t, err)
	assert.Equal(t, f.K, same.K)

	_, err = f.Downsample(0)
	assert.ErrorIs(t, err, curvature.ErrStride)
}

// TestTailCorrection: first sample is untouched (log 1 = 0), tail is bent.
func TestTailCorrection(t *testing.T) {
	f := stubField(100)
	const eta = 1e-3

	out, err := f.TailCorrection(eta)
	require.NoError(t, err)

	assert.Equal(t, f.K[0], out.K[0], "rank 1 has log(1)=0")
	for i := 1; i < f.Len(); i++ {
		want := f.K[i] * (1.0 + eta*math.Log(float64(i+1)))
		assert.InDelta(t, want, out.K[i], 1e-15)
	}

	// η=0 is the identity.
	id, err := f.TailCorrection(0)
	require.NoError(t, err)
	assert.Equal(t, f.K, id.K)
}

// TestPerturb_DeterministicAndScaled: same seed → identical output; the
// injected signal is small relative to the field RMS.
func TestPerturb_DeterministicAndScaled(t *testing.T) {
	f := stubField(512)
	const (
		amp   = 0.01
		modes = 8
		seed  = 42
	)

	a, err := f.Perturb(amp, modes, seed)
	require.NoError(t, err)
	b, err := f.Perturb(amp, modes, seed)
	require.NoError(t, err)
	assert.Equal(t, a.K, b.K, "seeded perturbation must be reproducible")

	c, err := f.Perturb(amp, modes, seed+1)
	require.NoError(t, err)
	assert.NotEqual(t, a.K, c.K, "different seed must differ")

	// Mean of the injected signal ~0; RMS ~ amp·RMS(k).
	var sum, sumSq, fieldSq float64
	for i := range f.K {
		d := a.K[i] - f.K[i]
		sum += d
		sumSq += d * d
		fieldSq += f.K[i] * f.K[i]
	}
	n := float64(f.Len())
	assert.InDelta(t, 0.0, sum/n, 1e-9, "zero-mean injection")
	assert.InDelta(t, amp*math.Sqrt(fieldSq/n), math.Sqrt(sumSq/n), amp*0.01, "unit-variance scaling")
}

// TestPerturb_Sentinels covers the parameter contract and the amp=0 identity.
func TestPerturb_Sentinels(t *testing.T) {
	f := stubField(16)

	_, err := f.Perturb(-0.1, 4, 1)
	assert.ErrorIs(t, err, curvature.ErrPerturb)

	_, err = f.Perturb(0.1, 0, 1)
	assert.ErrorIs(t, err, curvature.ErrPerturb)

	id, err := f.Perturb(0, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, f.K, id.K)
}

// TestTransforms_Pure: transforms never mutate their receiver.
func TestTransforms_Pure(t *testing.T) {
	f := stubField(64)
	orig := make([]float64, f.Len())
	copy(orig, f.K)

	_, err := f.Smooth(5)
	require.NoError(t, err)
	_, err = f.Downsample(2)
	require.NoError(t, err)
	_, err = f.TailCorrection(1e-4)
	require.NoError(t, err)
	_, err = f.Perturb(0.05, 4, 7)
	require.NoError(t, err)

	assert.Equal(t, orig, f.K, "receiver must be untouched")
}
