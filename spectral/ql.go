// SPDX-License-Identifier: MIT
package spectral

import (
	"errors"
	"math"
)

// qlMaxSweeps bounds the implicit-shift sweeps per eigenvalue.
const qlMaxSweeps = 50

// errQLStalled indicates the QL iteration did not isolate an eigenvalue
// within qlMaxSweeps. Interior only; never escapes the package.
var errQLStalled = errors.New("spectral: ql iteration stalled")

// qlEigen diagonalizes a symmetric tridiagonal matrix in place via implicit
// Wilkinson-shift QL sweeps (eigenvalues only, no eigenvector accumulation).
//
// d (len n) carries the diagonal in and the eigenvalues out, unsorted.
// e (len n) carries the sub-diagonal in e[0..n-2]; e[n-1] is scratch.
// Both slices are destroyed.
//
// Complexity: O(n²) worst case, O(n) per sweep.
func qlEigen(d, e []float64) error {
	n := len(d)
	if n <= 1 {
		return nil
	}
	e[n-1] = 0

	for l := 0; l < n; l++ {
		iter := 0
		for {
			// Find a negligible off-diagonal element to split at.
			var m int
			for m = l; m < n-1; m++ {
				dd := math.Abs(d[m]) + math.Abs(d[m+1])
				if math.Abs(e[m]) <= machineEps*dd {
					break
				}
			}
			if m == l {
				break
			}

			iter++
			if iter > qlMaxSweeps {
				return errQLStalled
			}

			// Wilkinson shift from the leading 2x2.
			g := (d[l+1] - d[l]) / (2 * e[l])
			r := math.Hypot(g, 1)
			g = d[m] - d[l] + e[l]/(g+math.Copysign(r, g))

			s, c, p := 1.0, 1.0, 0.0
			i := m - 1
			for ; i >= l; i-- {
				f := s * e[i]
				b := c * e[i]
				r = math.Hypot(f, g)
				e[i+1] = r
				if r == 0 {
					// Recover from underflow mid-sweep and restart.
					d[i+1] -= p
					e[m] = 0

					break
				}
				s = f / r
				c = g / r
				g = d[i+1] - p
				r = (d[i]-g)*s + 2*c*b
				p = s * r
				d[i+1] = g + p
				g = c*r - b
			}
			if r == 0 && i >= l {
				continue
			}
			d[l] -= p
			e[l] = g
			e[m] = 0
		}
	}

	return nil
}

// machineEps is the float64 unit roundoff used for deflation tests.
var machineEps = math.Nextafter(1, 2) - 1
