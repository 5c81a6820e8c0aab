// SPDX-License-Identifier: MIT
package fitmodel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrModelUnknown indicates an unrecognized model name or enum value.
	ErrModelUnknown = errors.New("fitmodel: unknown model")

	// ErrInsufficientSamples indicates fewer than two usable levels, or a
	// prefix on which the model's design matrix cannot be formed.
	ErrInsufficientSamples = errors.New("fitmodel: insufficient samples")
)

// minSamples is the smallest usable prefix: below this no slope/intercept
// pair is determined.
const minSamples = 2

// Model selects the parametric form mapping eigenvalues onto the reference
// sequence.
type Model int

const (
	// Affine fits γ ≈ a·λ + b.
	Affine Model = iota

	// AffineLogIndex fits γ ≈ a·λ + c·log(n) + b with n the 1-based level.
	AffineLogIndex

	// AffineLogEigen fits γ ≈ a·λ + c·log(λ) + b.
	AffineLogEigen
)

// String implements fmt.Stringer; the names double as config/CLI tokens.
func (m Model) String() string {
	switch m {
	case Affine:
		return "affine"
	case AffineLogIndex:
		return "log-index"
	case AffineLogEigen:
		return "log-eigen"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// ParseModel maps a config/CLI token onto a Model.
func ParseModel(s string) (Model, error) {
	switch s {
	case "affine":
		return Affine, nil
	case "log-index":
		return AffineLogIndex, nil
	case "log-eigen":
		return AffineLogEigen, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrModelUnknown, s)
	}
}

// Coeffs holds a fitted model. C is zero for the plain Affine form.
type Coeffs struct {
	Model Model
	A     float64
	B     float64
	C     float64
}

// Eval scores a fitted model over an evaluation prefix.
type Eval struct {
	// MeanPct is the mean relative error in percent.
	MeanPct float64

	// MaxPct is the worst relative error in percent.
	MaxPct float64

	// Used is the number of levels the score covers.
	Used int

	// Clamped reports that the requested prefix exceeded the available
	// data and was shortened.
	Clamped bool
}

// Fit computes the least-squares coefficients of model m over the first
// fitN levels of eigs against refs. fitN clamps to the common prefix; the
// problem is solved as a tall linear system through QR.
func Fit(eigs, refs []float64, fitN int, m Model) (Coeffs, error) {
	n, _ := usable(eigs, refs, fitN)
	if n < minSamples {
		return Coeffs{}, fmt.Errorf("%w: %d levels for fit", ErrInsufficientSamples, n)
	}

	cols, err := designColumns(m)
	if err != nil {
		return Coeffs{}, err
	}

	x := mat.NewDense(n, cols, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		row, err := designRow(m, eigs[i], i)
		if err != nil {
			return Coeffs{}, err
		}
		x.SetRow(i, row)
		y.SetVec(i, refs[i])
	}

	var sol mat.VecDense
	if err := sol.SolveVec(x, y); err != nil {
		return Coeffs{}, fmt.Errorf("fitmodel: least squares: %w", err)
	}

	c := Coeffs{Model: m, A: sol.AtVec(0)}
	if cols == 2 {
		c.B = sol.AtVec(1)
	} else {
		c.C = sol.AtVec(1)
		c.B = sol.AtVec(2)
	}

	return c, nil
}

// Evaluate scores coefficients c over the first evalN levels. The relative
// error of level i is |pred − ref| / ref · 100.
func Evaluate(eigs, refs []float64, c Coeffs, evalN int) (Eval, error) {
	n, clamped := usable(eigs, refs, evalN)
	if n < minSamples {
		return Eval{}, fmt.Errorf("%w: %d levels for evaluation", ErrInsufficientSamples, n)
	}

	var sum, worst float64
	for i := 0; i < n; i++ {
		pred, err := Predict(c, eigs[i], i)
		if err != nil {
			return Eval{}, err
		}

		rel := math.Abs(pred-refs[i]) / refs[i] * 100.0
		sum += rel
		if rel > worst {
			worst = rel
		}
	}

	return Eval{MeanPct: sum / float64(n), MaxPct: worst, Used: n, Clamped: clamped}, nil
}

// Predict applies coefficients c to eigenvalue eig at 0-based level i.
func Predict(c Coeffs, eig float64, i int) (float64, error) {
	row, err := designRow(c.Model, eig, i)
	if err != nil {
		return 0, err
	}

	switch len(row) {
	case 2:
		return c.A*row[0] + c.B*row[1], nil
	default:
		return c.A*row[0] + c.C*row[1] + c.B*row[2], nil
	}
}

// usable clamps the requested prefix to the common data length.
func usable(eigs, refs []float64, want int) (n int, clamped bool) {
	n = want
	if len(eigs) < n {
		n = len(eigs)
	}
	if len(refs) < n {
		n = len(refs)
	}

	return n, n < want
}

// designColumns is the width of the model's design matrix.
func designColumns(m Model) (int, error) {
	switch m {
	case Affine:
		return 2, nil
	case AffineLogIndex, AffineLogEigen:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrModelUnknown, int(m))
	}
}

// designRow builds one row of the design matrix for 0-based level i.
func designRow(m Model, eig float64, i int) ([]float64, error) {
	switch m {
	case Affine:
		return []float64{eig, 1}, nil
	case AffineLogIndex:
		return []float64{eig, math.Log(float64(i + 1)), 1}, nil
	case AffineLogEigen:
		if eig <= 0 {
			return nil, fmt.Errorf("%w: non-positive eigenvalue %g at level %d",
				ErrInsufficientSamples, eig, i+1)
		}

		return []float64{eig, math.Log(eig), 1}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrModelUnknown, int(m))
	}
}
