package curvature

import "errors"

var (
	// ErrNoPrimes indicates an empty prime sequence was supplied.
	ErrNoPrimes = errors.New("curvature: prime sequence is empty")

	// ErrNotIncreasing indicates the prime sequence is not strictly increasing.
	ErrNotIncreasing = errors.New("curvature: prime sequence not strictly increasing")

	// ErrWindowRadius indicates a non-positive compositeness window radius.
	ErrWindowRadius = errors.New("curvature: window radius must be > 0")

	// ErrRange indicates an invalid integer support range (n0 < 2 or n1 < n0).
	ErrRange = errors.New("curvature: invalid integer range")

	// ErrSmoothWindow indicates a smoothing window that is not odd and > 1.
	ErrSmoothWindow = errors.New("curvature: smoothing window must be odd and > 1")

	// ErrStride indicates a non-positive downsampling stride.
	ErrStride = errors.New("curvature: stride must be > 0")

	// ErrPerturb indicates invalid perturbation parameters (amplitude < 0 or modes <= 0).
	ErrPerturb = errors.New("curvature: invalid perturbation parameters")

	// ErrEmptyField indicates a transform was applied to a zero-length field.
	ErrEmptyField = errors.New("curvature: field is empty")
)

// Field is a finite ordered sequence of curvature samples K over a strictly
// increasing support coordinate (integer position, prime value, or log-prime).
// Invariant: len(K) == len(Support). Fields are immutable after construction;
// transforms allocate.
type Field struct {
	// Support holds the coordinate of each sample, strictly increasing.
	Support []float64

	// K holds the curvature value at each support point.
	K []float64
}

// Len reports the number of samples.
func (f Field) Len() int { return len(f.K) }

// clone deep-copies a field so transforms never alias their input.
func (f Field) clone() Field {
	out := Field{
		Support: make([]float64, len(f.Support)),
		K:       make([]float64, len(f.K)),
	}
	copy(out.Support, f.Support)
	copy(out.K, f.K)

	return out
}

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultWindowRadius is the half-width R of the compositeness window.
	DefaultWindowRadius = 20

	// DefaultCurvatureC is the c constant in k = c·σ³·√ρ.
	DefaultCurvatureC = 0.150

	// DefaultScale is the leading scale of the integer-grid log-log field.
	DefaultScale = 0.83

	// DefaultExponent is the exponent q of the integer-grid log-log field.
	DefaultExponent = 2.85

	// DefaultDensityMix weights the composite density inside the log-log term.
	DefaultDensityMix = 3.2

	// DefaultLogLogShift stabilizes log log(n+shift) for small n.
	DefaultLogLogShift = 1e8

	// densityFloor keeps √ρ differentiable when a window is all-prime.
	densityFloor = 1e-12

	// maskPad extends the compositeness mask slightly past the last window.
	maskPad = 5
)

// Option mutates curvature options. Idempotent; apply in any order.
type Option func(*Options)

// Options carries the knobs of both field builders. Construct via the
// builders' variadic parameters; fields are read-only afterwards.
type Options struct {
	windowRadius int
	curvatureC   float64
	scale        float64
	exponent     float64
	densityMix   float64
	logLogShift  float64
}

func defaultOptions() Options {
	return Options{
		windowRadius: DefaultWindowRadius,
		curvatureC:   DefaultCurvatureC,
		scale:        DefaultScale,
		exponent:     DefaultExponent,
		densityMix:   DefaultDensityMix,
		logLogShift:  DefaultLogLogShift,
	}
}

// WithWindowRadius sets the compositeness half-window R.
func WithWindowRadius(r int) Option {
	return func(o *Options) { o.windowRadius = r }
}

// WithCurvatureC sets the c constant of the prime-grid field.
func WithCurvatureC(c float64) Option {
	return func(o *Options) { o.curvatureC = c }
}

// WithScale sets the leading scale of the integer-grid field.
func WithScale(s float64) Option {
	return func(o *Options) { o.scale = s }
}

// WithExponent sets the exponent of the integer-grid field.
func WithExponent(q float64) Option {
	return func(o *Options) { o.exponent = q }
}

// WithDensityMix sets the composite-density weight inside the log-log term.
func WithDensityMix(m float64) Option {
	return func(o *Options) { o.densityMix = m }
}

// WithLogLogShift sets the additive shift under the double logarithm.
func WithLogLogShift(s float64) Option {
	return func(o *Options) { o.logLogShift = s }
}
