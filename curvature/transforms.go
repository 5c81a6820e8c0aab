package curvature

import (
	"math"
	"math/rand"
)

// Smooth returns a moving-average smoothing of the field with an odd window
// w > 1. Edge samples average over the kernel overlap that exists but are
// still divided by w, damping the boundary ("same"-mode convolution with a
// box kernel). Support is unchanged.
//
// Errors: ErrEmptyField; ErrSmoothWindow when w ≤ 1 or even.
func (f Field) Smooth(w int) (Field, error) {
	if f.Len() == 0 {
		return Field{}, ErrEmptyField
	}
	if w <= 1 || w%2 == 0 {
		return Field{}, ErrSmoothWindow
	}

	out := f.clone()
	half := w / 2
	inv := 1.0 / float64(w)
	for i := range f.K {
		sum := 0.0
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < len(f.K) {
				sum += f.K[j]
			}
		}
		out.K[i] = sum * inv
	}

	return out, nil
}

// Downsample keeps every stride-th sample (stride 1 is a pure copy).
//
// Errors: ErrEmptyField; ErrStride when stride ≤ 0.
func (f Field) Downsample(stride int) (Field, error) {
	if f.Len() == 0 {
		return Field{}, ErrEmptyField
	}
	if stride <= 0 {
		return Field{}, ErrStride
	}

	n := (f.Len() + stride - 1) / stride
	out := Field{
		Support: make([]float64, 0, n),
		K:       make([]float64, 0, n),
	}
	for i := 0; i < f.Len(); i += stride {
		out.Support = append(out.Support, f.Support[i])
		out.K = append(out.K, f.K[i])
	}

	return out, nil
}

// TailCorrection applies the multiplicative shape correction
//
//	k[i] ← k[i]·(1 + η·log(i+1))
//
// with a 1-based rank, leaving early samples nearly untouched while bending
// the tail. η = 0 returns an identical copy.
//
// Errors: ErrEmptyField.
func (f Field) TailCorrection(eta float64) (Field, error) {
	if f.Len() == 0 {
		return Field{}, ErrEmptyField
	}

	out := f.clone()
	for i := range out.K {
		out.K[i] *= 1.0 + eta*math.Log(float64(i+1))
	}

	return out, nil
}

// Perturb adds a band-limited structured perturbation: a superposition of
// the `modes` lowest Fourier modes with seeded random phases, normalized to
// zero mean and unit variance, then scaled to amplitude·RMS(k).
//
// The seed fully determines the perturbation; there is no ambient randomness.
//
// Errors: ErrEmptyField; ErrPerturb when amplitude < 0 or modes ≤ 0.
func (f Field) Perturb(amplitude float64, modes int, seed int64) (Field, error) {
	if f.Len() == 0 {
		return Field{}, ErrEmptyField
	}
	if amplitude < 0 || modes <= 0 {
		return Field{}, ErrPerturb
	}
	if amplitude == 0 {
		return f.clone(), nil
	}

	n := f.Len()
	rng := rand.New(rand.NewSource(seed))

	// Stage 1 - raw low-frequency superposition with random phases.
	raw := make([]float64, n)
	for m := 1; m <= modes; m++ {
		phase := rng.Float64() * 2 * math.Pi
		freq := 2 * math.Pi * float64(m) / float64(n)
		for i := 0; i < n; i++ {
			raw[i] += math.Sin(freq*float64(i) + phase)
		}
	}

	// Stage 2 - normalize to zero mean, unit variance.
	mean := 0.0
	for _, v := range raw {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for i := range raw {
		raw[i] -= mean
		variance += raw[i] * raw[i]
	}
	variance /= float64(n)
	if variance == 0 {
		// Degenerate single-point field; nothing meaningful to add.
		return f.clone(), nil
	}
	std := math.Sqrt(variance)

	// Stage 3 - scale to a fraction of the field's RMS and add.
	scale := amplitude * rms(f.K) / std
	out := f.clone()
	for i := range out.K {
		out.K[i] += raw[i] * scale
	}

	return out, nil
}

func rms(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}

	return math.Sqrt(sum / float64(len(v)))
}
