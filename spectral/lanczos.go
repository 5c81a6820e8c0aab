// SPDX-License-Identifier: MIT
package spectral

import (
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/primespectra/operator"
)

// Smallest extracts the k eigenvalues of h nearest the configured shift
// (default 0, i.e. the algebraically smallest levels of the clamped
// operators this pipeline builds), sorted ascending.
//
// Contracts:
//   - h non-nil with dimension ≥ 3, else ErrNilOperator.
//   - k > 0, else ErrBadCount. Internally k is capped at dim−2, mirroring
//     the ARPACK-style restriction; Requested keeps the caller's k.
//
// Failure semantics: running out of iteration budget is not an error — the
// Result simply reports fewer converged values (Result.Partial()).
// ErrSingularShift surfaces only when the shifted factorization stays
// singular after renudging.
//
// Complexity: O(m·(N + m²)) for m ≤ MaxIter Lanczos steps on dimension N;
// memory O(m·N) for the reorthogonalization basis.
func Smallest(h *operator.Tridiag, k int, opts ...Option) (Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}
	if h == nil || h.Dim() < 3 {
		return Result{}, ErrNilOperator
	}
	if k <= 0 {
		return Result{}, ErrBadCount
	}

	values, err := smallestAt(h, k, o.shift, o)
	if err != nil {
		return Result{}, err
	}

	return Result{Values: values, Converged: len(values), Requested: k}, nil
}

// smallestAt runs one shift-invert Lanczos extraction around sigma and
// returns the converged eigenvalues of h nearest sigma, ascending.
func smallestAt(h *operator.Tridiag, k int, sigma float64, o Options) ([]float64, error) {
	n := h.Dim()
	kEff := k
	if kEff > n-2 {
		kEff = n - 2
	}

	fac, err := factorNear(h, sigma)
	if err != nil {
		return nil, err
	}

	// Stage 1 - Lanczos iteration on (H − σI)⁻¹ with full reorthogonalization.
	maxM := o.maxIter
	if maxM > n {
		maxM = n
	}

	basis := make([][]float64, 0, maxM)
	alpha := make([]float64, 0, maxM)
	beta := make([]float64, 0, maxM)

	v := startVector(n)
	basis = append(basis, v)

	w := make([]float64, n)
	scale := operatorScale(h)

	prevTheta := []float64(nil)
	stable := make([]int, kEff)
	converged := 0

	for m := 1; m <= maxM; m++ {
		cur := basis[len(basis)-1]
		fac.solve(w, cur)

		a := dot(cur, w)
		alpha = append(alpha, a)

		axpy(w, -a, cur)
		if len(beta) > 0 {
			axpy(w, -beta[len(beta)-1], basis[len(basis)-2])
		}

		// Full reorthogonalization keeps the basis numerically orthonormal;
		// without it spurious duplicate Ritz values appear long before
		// convergence.
		for _, u := range basis {
			axpy(w, -dot(u, w), u)
		}

		b := norm(w)
		if b <= breakdownFloor*scale || m == n {
			// Krylov space exhausted: the current Ritz values are exact for
			// the captured invariant subspace.
			theta := ritzValues(alpha, beta)
			converged = len(theta)
			prevTheta = theta

			break
		}

		theta := ritzValues(alpha, beta)
		converged = updateStability(theta, prevTheta, stable, o.tol)
		prevTheta = theta
		if converged >= kEff {
			break
		}

		beta = append(beta, b)
		next := make([]float64, n)
		for i := range next {
			next[i] = w[i] / b
		}
		basis = append(basis, next)
	}

	// Stage 2 - map converged Ritz values θ back to λ = σ + 1/θ. The θ list
	// is ordered by descending |θ|, i.e. nearest σ first, so truncating to
	// kEff keeps the shift-invert window even when exhaustion converged the
	// whole Krylov space.
	take := converged
	if take > len(prevTheta) {
		take = len(prevTheta)
	}
	if take > kEff {
		take = kEff
	}

	values := make([]float64, 0, take)
	for _, th := range prevTheta[:take] {
		if th == 0 {
			continue
		}
		values = append(values, sigma+1/th)
	}
	sort.Float64s(values)

	return values, nil
}

// ritzValues diagonalizes the current Lanczos tridiagonal and returns its
// eigenvalues ordered by descending magnitude (nearest-σ first after the
// shift-invert mapping).
func ritzValues(alpha, beta []float64) []float64 {
	m := len(alpha)
	d := append([]float64(nil), alpha...)
	e := make([]float64, m)
	copy(e, beta)

	if err := qlEigen(d, e); err != nil {
		// A stalled sweep leaves d partially rotated; report nothing rather
		// than half-diagonalized values. The outer loop keeps iterating.
		return nil
	}

	sort.Slice(d, func(i, j int) bool {
		return math.Abs(d[i]) > math.Abs(d[j])
	})

	return d
}

// updateStability compares this sweep's leading Ritz values against the
// previous sweep and returns the length of the converged prefix.
func updateStability(theta, prev []float64, stable []int, tol float64) int {
	limit := len(stable)
	if len(theta) < limit {
		limit = len(theta)
	}

	for i := 0; i < limit; i++ {
		if i < len(prev) && relClose(theta[i], prev[i], tol) {
			stable[i]++
		} else {
			stable[i] = 0
		}
	}

	converged := 0
	for _, s := range stable {
		if s < stableSweeps {
			break
		}
		converged++
	}

	return converged
}

func relClose(a, b, tol float64) bool {
	diff := math.Abs(a - b)
	mag := math.Max(math.Abs(a), math.Abs(b))
	if mag == 0 {
		return diff == 0
	}

	return diff <= tol*mag
}

// ---------- shifted LDLᵀ factorization ----------

// tridiagLDL is the LDLᵀ factorization of (H − σI): unit lower bidiagonal L
// with sub-diagonal l, diagonal d.
type tridiagLDL struct {
	d []float64
	l []float64
}

// factorNear factors (H − σI), renudging σ geometrically when a pivot is
// numerically singular (σ on top of an eigenvalue).
func factorNear(h *operator.Tridiag, sigma float64) (*tridiagLDL, error) {
	scale := operatorScale(h)
	s := sigma
	for attempt := 0; attempt < renudgeAttempts; attempt++ {
		if f, ok := factorLDL(h, s, scale); ok {
			return f, nil
		}
		s += (math.Abs(s) + 1) * 1e-10 * math.Pow(2, float64(attempt))
	}

	return nil, ErrSingularShift
}

func factorLDL(h *operator.Tridiag, sigma, scale float64) (*tridiagLDL, bool) {
	n := h.Dim()
	d := make([]float64, n)
	l := make([]float64, n-1)

	d[0] = h.Main[0] - sigma
	if math.Abs(d[0]) < pivotFloor*scale {
		return nil, false
	}
	for i := 0; i < n-1; i++ {
		l[i] = h.Off[i] / d[i]
		d[i+1] = h.Main[i+1] - sigma - l[i]*h.Off[i]
		if math.Abs(d[i+1]) < pivotFloor*scale {
			return nil, false
		}
	}

	return &tridiagLDL{d: d, l: l}, true
}

// solve computes dst = (H − σI)⁻¹ b via the two bidiagonal sweeps.
func (f *tridiagLDL) solve(dst, b []float64) {
	n := len(f.d)

	dst[0] = b[0]
	for i := 1; i < n; i++ {
		dst[i] = b[i] - f.l[i-1]*dst[i-1]
	}
	for i := 0; i < n; i++ {
		dst[i] /= f.d[i]
	}
	for i := n - 2; i >= 0; i-- {
		dst[i] -= f.l[i] * dst[i+1]
	}
}

// ---------- small vector kernels ----------

func startVector(n int) []float64 {
	rng := rand.New(rand.NewSource(startSeed))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64() - 0.5
	}
	nrm := norm(v)
	for i := range v {
		v[i] /= nrm
	}

	return v
}

func operatorScale(h *operator.Tridiag) float64 {
	s := 0.0
	for _, x := range h.Main {
		if a := math.Abs(x); a > s {
			s = a
		}
	}
	for _, x := range h.Off {
		if a := math.Abs(x); a > s {
			s = a
		}
	}
	if s == 0 {
		s = 1
	}

	return s
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func axpy(dst []float64, a float64, x []float64) {
	for i := range dst {
		dst[i] += a * x[i]
	}
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}
