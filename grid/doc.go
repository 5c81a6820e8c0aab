// Package grid chooses the coordinate the spectral operator acts on and
// produces the matching discrete-Laplacian stencil.
//
// What:
//
//   - Kind selects the coordinate: IndexGrid (raw sample index), LogUniform
//     (field resampled onto a uniform grid in t = log support), LogNonUniform
//     (stencil built directly on the non-uniform t = log support nodes).
//   - Build returns the grid Spec, the symmetric tridiagonal Stencil, and the
//     field aligned with that stencil (resampled only for LogUniform).
//
// Discretization choice:
//
//   - On non-uniform grids two discretizations circulate: the three-point
//     finite-difference formula and the symmetric quadratic-form one
//     (main[i] = 1/h[i-1] + 1/h[i], off[i] = -1/h[i]). They are not
//     numerically identical. This package implements the quadratic form:
//     the finite-difference form has unequal sub/super diagonals off a
//     uniform grid, which breaks the operator-symmetry invariant the
//     eigensolver depends on.
//
// Boundary:
//
//   - Both endpoint rows of every stencil carry a single large diagonal
//     clamp (default 1e6, range-checked to [1, 1e12]) approximating a
//     confining wall. The clamp pushes boundary modes out of the requested
//     spectral window without overflowing the solver's factorization.
//
// Errors:
//
//   - ErrTooFewPoints, ErrNonIncreasing, ErrUnknownKind, ErrClampRange.
package grid
