package grid

// linearResample interpolates y(x) at the query points q. x must be strictly
// increasing and q within [x[0], x[n-1]] (guaranteed by Build, which derives
// q from x's endpoints). Values are clamped at the boundaries.
func linearResample(x, y, q []float64) []float64 {
	out := make([]float64, len(q))
	j := 0
	for i, t := range q {
		// Monotone scan: q is increasing, so j never moves backwards.
		for j < len(x)-2 && x[j+1] < t {
			j++
		}

		switch {
		case t <= x[0]:
			out[i] = y[0]
		case t >= x[len(x)-1]:
			out[i] = y[len(y)-1]
		default:
			w := (t - x[j]) / (x[j+1] - x[j])
			out[i] = y[j] + w*(y[j+1]-y[j])
		}
	}

	return out
}

// splineResample evaluates a natural cubic spline through (x, y) at the query
// points q. The second-derivative system is tridiagonal and solved by a
// single forward/backward sweep.
//
// Complexity: O(N) setup + O(len(q)) evaluation (monotone scan).
func splineResample(x, y, q []float64) []float64 {
	n := len(x)
	if n < 3 {
		return linearResample(x, y, q)
	}

	// Stage 1 - second derivatives m[i] with natural ends (m[0]=m[n-1]=0).
	m := make([]float64, n)
	c := make([]float64, n) // scratch for the forward sweep
	for i := 1; i < n-1; i++ {
		hPrev := x[i] - x[i-1]
		hNext := x[i+1] - x[i]
		mu := hPrev / (hPrev + hNext)
		d := 6.0 * ((y[i+1]-y[i])/hNext - (y[i]-y[i-1])/hPrev) / (hPrev + hNext)

		p := mu*m[i-1] + 2.0
		m[i] = (mu - 1.0) / p
		c[i] = (d - mu*c[i-1]) / p
	}
	for i := n - 2; i >= 1; i-- {
		m[i] = m[i]*m[i+1] + c[i]
	}
	m[0], m[n-1] = 0, 0

	// Stage 2 - piecewise cubic evaluation with a monotone interval scan.
	out := make([]float64, len(q))
	j := 0
	for i, t := range q {
		for j < n-2 && x[j+1] < t {
			j++
		}

		switch {
		case t <= x[0]:
			out[i] = y[0]
		case t >= x[n-1]:
			out[i] = y[n-1]
		default:
			h := x[j+1] - x[j]
			a := (x[j+1] - t) / h
			b := (t - x[j]) / h
			out[i] = a*y[j] + b*y[j+1] +
				((a*a*a-a)*m[j]+(b*b*b-b)*m[j+1])*h*h/6.0
		}
	}

	return out
}
