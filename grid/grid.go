package grid

import (
	"math"

	"github.com/katalvlaran/primespectra/curvature"
)

// Build produces the grid Spec, the Laplacian Stencil, and the field aligned
// with the stencil nodes.
//
// Contracts:
//   - f.Len() ≥ MinPoints, else ErrTooFewPoints.
//   - f.Support strictly increasing (and positive for log kinds), else
//     ErrNonIncreasing / ErrNonPositiveSupport.
//   - clamp within [MinClamp, MaxClamp], else ErrClampRange.
//
// The returned field equals the input except under LogUniform, where K is
// resampled onto the uniform t nodes.
//
// Complexity: O(N) for index and non-uniform kinds; O(N) linear or O(N)
// spline resampling (tridiagonal solve) for LogUniform.
func Build(f curvature.Field, kind Kind, opts ...Option) (Spec, Stencil, curvature.Field, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if f.Len() < MinPoints {
		return Spec{}, Stencil{}, curvature.Field{}, ErrTooFewPoints
	}
	if o.clamp < MinClamp || o.clamp > MaxClamp {
		return Spec{}, Stencil{}, curvature.Field{}, ErrClampRange
	}
	if err := validateIncreasing(f.Support); err != nil {
		return Spec{}, Stencil{}, curvature.Field{}, err
	}

	switch kind {
	case IndexGrid:
		return buildIndex(f, o)
	case LogUniform:
		return buildLogUniform(f, o)
	case LogNonUniform:
		return buildLogNonUniform(f, o)
	default:
		return Spec{}, Stencil{}, curvature.Field{}, ErrUnknownKind
	}
}

// buildIndex discretizes on the raw sample index with uniform spacing.
func buildIndex(f curvature.Field, o Options) (Spec, Stencil, curvature.Field, error) {
	n := f.Len()

	h := 1.0
	if !o.unitSpacing {
		// Map indices onto [0,1] so operator scale tracks resolution; the
		// unit-spacing option restores the plain 2/-1 stencil.
		h = 1.0 / float64(n-1)
	}

	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * h
	}

	return uniformSpec(IndexGrid, t, h, o.clamp, f)
}

// buildLogUniform resamples K onto a uniform grid in t = log(support) and
// applies the uniform stencil there.
func buildLogUniform(f curvature.Field, o Options) (Spec, Stencil, curvature.Field, error) {
	tRaw, err := logCoordinate(f.Support)
	if err != nil {
		return Spec{}, Stencil{}, curvature.Field{}, err
	}

	n := f.Len()
	t0, t1 := tRaw[0], tRaw[n-1]
	h := (t1 - t0) / float64(n-1)

	t := make([]float64, n)
	for i := range t {
		t[i] = t0 + float64(i)*h
	}
	t[n-1] = t1 // exact endpoint, no accumulation drift

	var k []float64
	if o.cubicSpline {
		k = splineResample(tRaw, f.K, t)
	} else {
		k = linearResample(tRaw, f.K, t)
	}

	if o.unitSpacing {
		h = 1.0
		for i := range t {
			t[i] = float64(i)
		}
	}

	return uniformSpec(LogUniform, t, h, o.clamp, curvature.Field{Support: t, K: k})
}

// buildLogNonUniform discretizes directly on the non-uniform t = log(support)
// nodes via the symmetric quadratic-form stencil.
func buildLogNonUniform(f curvature.Field, o Options) (Spec, Stencil, curvature.Field, error) {
	t, err := logCoordinate(f.Support)
	if err != nil {
		return Spec{}, Stencil{}, curvature.Field{}, err
	}

	n := len(t)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = t[i+1] - t[i]
	}

	// Quadratic-form discretization of ∫|ψ'|² dt:
	//   main[i] = 1/h[i-1] + 1/h[i],  off[i] = -1/h[i].
	main := make([]float64, n)
	off := make([]float64, n-1)
	for i := 1; i < n-1; i++ {
		main[i] = 1.0/h[i-1] + 1.0/h[i]
	}
	for i := range off {
		off[i] = -1.0 / h[i]
	}
	main[0], main[n-1] = o.clamp, o.clamp

	spec := Spec{Kind: LogNonUniform, T: t, H: h}
	field := curvature.Field{Support: t, K: append([]float64(nil), f.K...)}

	return spec, Stencil{Main: main, Off: off}, field, nil
}

// uniformSpec assembles the 2/h², −1/h² stencil shared by the uniform kinds.
func uniformSpec(kind Kind, t []float64, h, clamp float64, f curvature.Field) (Spec, Stencil, curvature.Field, error) {
	n := len(t)
	inv := 1.0 / (h * h)

	main := make([]float64, n)
	off := make([]float64, n-1)
	for i := range main {
		main[i] = 2.0 * inv
	}
	for i := range off {
		off[i] = -inv
	}
	main[0], main[n-1] = clamp, clamp

	hs := make([]float64, n-1)
	for i := range hs {
		hs[i] = h
	}

	return Spec{Kind: kind, T: t, H: hs}, Stencil{Main: main, Off: off}, f, nil
}

func logCoordinate(support []float64) ([]float64, error) {
	t := make([]float64, len(support))
	for i, s := range support {
		if s <= 0 {
			return nil, ErrNonPositiveSupport
		}
		t[i] = math.Log(s)
	}

	return t, nil
}

func validateIncreasing(v []float64) error {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return ErrNonIncreasing
		}
	}

	return nil
}
