package grid

import "errors"

var (
	// ErrTooFewPoints indicates fewer than MinPoints field samples.
	ErrTooFewPoints = errors.New("grid: need at least 3 points")

	// ErrNonIncreasing indicates a support/coordinate that is not strictly increasing.
	ErrNonIncreasing = errors.New("grid: coordinate not strictly increasing")

	// ErrUnknownKind indicates an unrecognized grid kind.
	ErrUnknownKind = errors.New("grid: unknown grid kind")

	// ErrClampRange indicates a boundary clamp outside [MinClamp, MaxClamp].
	ErrClampRange = errors.New("grid: boundary clamp out of range")

	// ErrNonPositiveSupport indicates log-grid support values ≤ 0.
	ErrNonPositiveSupport = errors.New("grid: log grid requires positive support")
)

// Kind selects the coordinate the Laplacian is discretized on.
//
//   - IndexGrid     — raw sample index, uniform unit spacing.
//   - LogUniform    — field resampled onto a uniform grid in t = log support.
//   - LogNonUniform — stencil on the raw non-uniform t = log support nodes.
type Kind int

const (
	// IndexGrid uses the raw sample index with uniform spacing.
	IndexGrid Kind = iota

	// LogUniform resamples onto a uniform grid in t = log(support).
	LogUniform

	// LogNonUniform keeps the non-uniform t = log(support) nodes.
	LogNonUniform
)

// String implements fmt.Stringer for diagnostics and config round-trips.
func (k Kind) String() string {
	switch k {
	case IndexGrid:
		return "index"
	case LogUniform:
		return "log-uniform"
	case LogNonUniform:
		return "log-nonuniform"
	default:
		return "unknown"
	}
}

// ParseKind maps the config/CLI spelling back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "index":
		return IndexGrid, nil
	case "log-uniform":
		return LogUniform, nil
	case "log-nonuniform":
		return LogNonUniform, nil
	default:
		return 0, ErrUnknownKind
	}
}

// Spec describes the discretized coordinate.
type Spec struct {
	// Kind is the coordinate selection the stencil was built for.
	Kind Kind

	// T holds the coordinate of every node, strictly increasing.
	T []float64

	// H holds local spacings h[i] = T[i+1] − T[i] (len = len(T)−1).
	// For uniform kinds all entries are equal.
	H []float64
}

// Stencil is a symmetric tridiagonal Laplacian: Main (len N) and Off
// (len N−1) with Off shared by the sub- and super-diagonal. Endpoint Main
// entries carry the boundary clamp.
type Stencil struct {
	Main []float64
	Off  []float64
}

// Len reports the stencil dimension.
func (s Stencil) Len() int { return len(s.Main) }

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultBoundaryClamp approximates the confining wall at both endpoints.
	DefaultBoundaryClamp = 1e6

	// MinClamp and MaxClamp bound the clamp so the shift-invert factorization
	// neither ignores the wall nor overflows.
	MinClamp = 1.0
	MaxClamp = 1e12

	// MinPoints is the smallest grid the three-point stencil is defined on.
	MinPoints = 3
)

// Option mutates grid options. Idempotent.
type Option func(*Options)

// Options configures Build. Zero value is not usable; options overlay the
// documented defaults.
type Options struct {
	clamp       float64
	cubicSpline bool
	unitSpacing bool
}

func defaultOptions() Options {
	return Options{clamp: DefaultBoundaryClamp}
}

// WithBoundaryClamp overrides the endpoint clamp magnitude.
func WithBoundaryClamp(c float64) Option {
	return func(o *Options) { o.clamp = c }
}

// WithCubicSpline switches LogUniform resampling from linear interpolation to
// a natural cubic spline.
func WithCubicSpline() Option {
	return func(o *Options) { o.cubicSpline = true }
}

// WithUnitSpacing forces h = 1 on uniform grids regardless of the coordinate
// span, reproducing the index-absorbed scaling some variants use.
func WithUnitSpacing() Option {
	return func(o *Options) { o.unitSpacing = true }
}
