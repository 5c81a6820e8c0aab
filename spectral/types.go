// SPDX-License-Identifier: MIT
package spectral

import "errors"

var (
	// ErrNilOperator indicates a nil or too-small operator.
	ErrNilOperator = errors.New("spectral: nil or degenerate operator")

	// ErrBadCount indicates a non-positive eigenvalue count request.
	ErrBadCount = errors.New("spectral: requested count must be > 0")

	// ErrSingularShift indicates the shifted operator stayed numerically
	// singular after the renudging attempts.
	ErrSingularShift = errors.New("spectral: shift renudging exhausted")

	// ErrBadOption indicates a nonsensical option value (tol ≤ 0, maxIter ≤ 0,
	// batch ≤ 0, damping < 1).
	ErrBadOption = errors.New("spectral: invalid option value")
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultTol is the relative stabilization tolerance for Ritz values.
	DefaultTol = 1e-10

	// DefaultMaxIter bounds the Lanczos steps per shift.
	DefaultMaxIter = 500

	// DefaultShift targets eigenvalues nearest zero.
	DefaultShift = 0.0

	// DefaultBatchSize is the per-shift extraction size in Batched.
	DefaultBatchSize = 50

	// DefaultDamping scales the last converged eigenvalue into the next shift.
	DefaultDamping = 1.001

	// startSeed fixes the Lanczos start vector; the solver is deterministic.
	startSeed = 0x5eed

	// renudgeAttempts bounds shift perturbation retries on a singular pivot.
	renudgeAttempts = 8

	// pivotFloor is the relative magnitude below which an LDLᵀ pivot counts
	// as singular.
	pivotFloor = 1e-14

	// breakdownFloor is the β magnitude at which the Krylov space is treated
	// as exhausted (invariant subspace found).
	breakdownFloor = 1e-13

	// stableSweeps is how many consecutive stabilized QL sweeps a Ritz value
	// needs before it counts as converged.
	stableSweeps = 2
)

// Option mutates solver options. Idempotent.
type Option func(*Options)

// Options configures the eigensolver. Tolerance and iteration budget are
// configuration here, never hard-coded at call sites.
type Options struct {
	tol       float64
	maxIter   int
	shift     float64
	batchSize int
	damping   float64
	ckptPath  string
	ckptKey   string
}

func defaultOptions() Options {
	return Options{
		tol:       DefaultTol,
		maxIter:   DefaultMaxIter,
		shift:     DefaultShift,
		batchSize: DefaultBatchSize,
		damping:   DefaultDamping,
	}
}

func (o Options) validate() error {
	if o.tol <= 0 || o.maxIter <= 0 || o.batchSize <= 0 || o.damping < 1 {
		return ErrBadOption
	}

	return nil
}

// WithTol sets the Ritz stabilization tolerance.
func WithTol(tol float64) Option {
	return func(o *Options) { o.tol = tol }
}

// WithMaxIter sets the Lanczos iteration budget per shift.
func WithMaxIter(n int) Option {
	return func(o *Options) { o.maxIter = n }
}

// WithShift sets the shift-invert target.
func WithShift(sigma float64) Option {
	return func(o *Options) { o.shift = sigma }
}

// WithBatchSize sets the per-shift extraction size for Batched.
func WithBatchSize(n int) Option {
	return func(o *Options) { o.batchSize = n }
}

// WithDamping sets the shift reuse factor for Batched (≥ 1).
func WithDamping(d float64) Option {
	return func(o *Options) { o.damping = d }
}

// WithCheckpoint persists Batched progress at path under the given
// configuration key. An empty path disables checkpointing.
func WithCheckpoint(path, key string) Option {
	return func(o *Options) {
		o.ckptPath = path
		o.ckptKey = key
	}
}

// Result carries the outcome of an extraction. Values is always sorted
// ascending and len(Values) == Converged ≤ Requested; partial convergence is
// detected by inspection, not by error type.
type Result struct {
	// Values holds the converged eigenvalues, ascending.
	Values []float64

	// Converged is the number of eigenvalues that stabilized in budget.
	Converged int

	// Requested is the count originally asked for.
	Requested int
}

// Partial reports whether fewer eigenvalues converged than were requested.
func (r Result) Partial() bool { return r.Converged < r.Requested }
