// SPDX-License-Identifier: MIT
package operator

import (
	"errors"
	"math"

	"github.com/katalvlaran/primespectra/grid"
)

var (
	// ErrDimension indicates a field/stencil length mismatch at assembly.
	ErrDimension = errors.New("operator: field and stencil dimensions differ")

	// ErrUnknownPotential indicates an unrecognized potential kind.
	ErrUnknownPotential = errors.New("operator: unknown potential kind")

	// ErrNilOperator indicates a nil *Tridiag receiver or argument.
	ErrNilOperator = errors.New("operator: nil operator")

	// ErrOutOfRange indicates an index outside [0, N).
	ErrOutOfRange = errors.New("operator: index out of range")
)

// PotentialKind selects how the curvature field maps into the diagonal.
type PotentialKind int

const (
	// Linear scales the field: V = β·k.
	Linear PotentialKind = iota

	// Exponential exponentiates the field: V = exp(α·k).
	Exponential
)

// String implements fmt.Stringer for diagnostics and config round-trips.
func (p PotentialKind) String() string {
	switch p {
	case Linear:
		return "linear"
	case Exponential:
		return "exp"
	default:
		return "unknown"
	}
}

// ParsePotentialKind maps the config/CLI spelling back to a PotentialKind.
func ParsePotentialKind(s string) (PotentialKind, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "exp":
		return Exponential, nil
	default:
		return 0, ErrUnknownPotential
	}
}

// Tridiag is a real symmetric tridiagonal matrix: Main (len N) on the
// diagonal and Off (len N−1) on both the sub- and super-diagonal.
type Tridiag struct {
	Main []float64
	Off  []float64
}

// Dim reports the matrix dimension.
func (t *Tridiag) Dim() int { return len(t.Main) }

// At returns H[i,j]; entries off the three bands are zero.
func (t *Tridiag) At(i, j int) (float64, error) {
	n := t.Dim()
	if i < 0 || j < 0 || i >= n || j >= n {
		return 0, ErrOutOfRange
	}

	switch {
	case i == j:
		return t.Main[i], nil
	case i == j+1:
		return t.Off[j], nil
	case j == i+1:
		return t.Off[i], nil
	default:
		return 0, nil
	}
}

// MulVec computes dst = H·x. dst and x must both have length N and must not
// alias.
//
// Complexity: O(N).
func (t *Tridiag) MulVec(dst, x []float64) error {
	n := t.Dim()
	if len(x) != n || len(dst) != n {
		return ErrDimension
	}

	for i := 0; i < n; i++ {
		v := t.Main[i] * x[i]
		if i > 0 {
			v += t.Off[i-1] * x[i-1]
		}
		if i < n-1 {
			v += t.Off[i] * x[i+1]
		}
		dst[i] = v
	}

	return nil
}

// Dense expands the operator row-major; intended for small-N verification
// (tests, oracles), not for production paths.
func (t *Tridiag) Dense() [][]float64 {
	n := t.Dim()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		out[i][i] = t.Main[i]
		if i > 0 {
			out[i][i-1] = t.Off[i-1]
		}
		if i < n-1 {
			out[i][i+1] = t.Off[i]
		}
	}

	return out
}

// Potential derives the diagonal potential from the curvature values.
//
//	Linear:       V[i] = β·k[i]
//	Exponential:  V[i] = exp(α·k[i])
//
// A non-zero eps adds the slowly varying correction ε·log(i+1) (1-based
// rank) that stabilizes long-tail drift.
//
// Pure; k is never mutated.
func Potential(k []float64, kind PotentialKind, scale, eps float64) ([]float64, error) {
	v := make([]float64, len(k))
	switch kind {
	case Linear:
		for i, x := range k {
			v[i] = scale * x
		}
	case Exponential:
		for i, x := range k {
			v[i] = math.Exp(scale * x)
		}
	default:
		return nil, ErrUnknownPotential
	}

	if eps != 0 {
		for i := range v {
			v[i] += eps * math.Log(float64(i+1))
		}
	}

	return v, nil
}

// Assemble builds H = L + diag(V).
//
// Contracts:
//   - len(v) == stencil dimension, else ErrDimension.
//   - Pure: the stencil is copied, never aliased.
//
// The boundary clamp rows receive V like every other row; the clamp
// magnitude dominates the sum by construction.
//
// Complexity: O(N) time and memory.
func Assemble(st grid.Stencil, v []float64) (*Tridiag, error) {
	n := st.Len()
	if len(v) != n {
		return nil, ErrDimension
	}

	main := make([]float64, n)
	for i := range main {
		main[i] = st.Main[i] + v[i]
	}
	off := append([]float64(nil), st.Off...)

	return &Tridiag{Main: main, Off: off}, nil
}
