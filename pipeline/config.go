// SPDX-License-Identifier: MIT
package pipeline

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/primespectra/curvature"
	"github.com/katalvlaran/primespectra/fitmodel"
	"github.com/katalvlaran/primespectra/grid"
	"github.com/katalvlaran/primespectra/operator"
	"github.com/katalvlaran/primespectra/spectral"
)

// ErrConfig indicates an invalid configuration field; the message names it.
var ErrConfig = errors.New("pipeline: invalid config")

// DEFAULTS - the canonical experiment setup.
const (
	// DefaultPrimeCount is the number of primes feeding the curvature field.
	DefaultPrimeCount = 200_000

	// DefaultBeta is the linear potential scale V = β·k.
	DefaultBeta = 50.0

	// DefaultAlpha is the exponential potential scale V = exp(α·k).
	DefaultAlpha = 0.1

	// DefaultEpsLog is the slowly varying ε·log(rank) diagonal correction.
	DefaultEpsLog = 0.02

	// DefaultLevels is how many eigenvalues the run extracts.
	DefaultLevels = 20

	// DefaultFitN / DefaultEvalN are the fit and scoring windows.
	DefaultFitN  = 20
	DefaultEvalN = 80
)

// Config is the full parameter set of one pipeline run. Values are plain
// data; Validate() is the single gatekeeper before execution.
type Config struct {
	// PrimeCount is how many primes the sieve produces.
	PrimeCount int

	// OddOnly drops 2 from the prime set.
	OddOnly bool

	// WindowRadius is the compositeness window half-width R.
	WindowRadius int

	// CurvatureC is the curvature scale constant c.
	CurvatureC float64

	// Grid selects the discretization coordinate.
	Grid grid.Kind

	// CubicSpline switches log-uniform resampling from linear to a natural
	// cubic spline.
	CubicSpline bool

	// BoundaryClamp is the confining potential added at both grid ends.
	BoundaryClamp float64

	// Potential selects V's functional form.
	Potential operator.PotentialKind

	// Beta scales the linear potential, Alpha the exponential one.
	Beta  float64
	Alpha float64

	// EpsLog is the ε·log(rank) diagonal correction; 0 disables it.
	EpsLog float64

	// Eta is the tail-correction shape parameter; 0 disables it.
	Eta float64

	// SmoothWindow is the moving-average width; 0 disables smoothing.
	SmoothWindow int

	// Downsample is the keep-every-stride factor; 0 or 1 disables it.
	Downsample int

	// Levels is how many eigenvalues to extract.
	Levels int

	// Model selects the parametric fit form.
	Model fitmodel.Model

	// FitN and EvalN are the fitting and scoring prefixes.
	FitN  int
	EvalN int

	// Tol and MaxIter bound the eigensolver per shift.
	Tol     float64
	MaxIter int

	// CheckpointPath enables batched-extraction checkpointing; empty
	// disables it.
	CheckpointPath string

	// BatchSize and Damping steer the batched extraction.
	BatchSize int
	Damping   float64
}

// Default returns the canonical configuration: linear potential on the
// log-uniform grid, log-index fit over the first 20 levels.
func Default() Config {
	return Config{
		PrimeCount:    DefaultPrimeCount,
		WindowRadius:  curvature.DefaultWindowRadius,
		CurvatureC:    curvature.DefaultCurvatureC,
		Grid:          grid.LogUniform,
		BoundaryClamp: grid.DefaultBoundaryClamp,
		Potential:     operator.Linear,
		Beta:          DefaultBeta,
		Alpha:         DefaultAlpha,
		EpsLog:        DefaultEpsLog,
		Levels:        DefaultLevels,
		Model:         fitmodel.AffineLogIndex,
		FitN:          DefaultFitN,
		EvalN:         DefaultEvalN,
		Tol:           spectral.DefaultTol,
		MaxIter:       spectral.DefaultMaxIter,
		BatchSize:     spectral.DefaultBatchSize,
		Damping:       spectral.DefaultDamping,
	}
}

// Validate checks every field and names the offender in the error.
func (c Config) Validate() error {
	switch {
	case c.PrimeCount < 1:
		return fmt.Errorf("%w: PrimeCount must be >= 1, got %d", ErrConfig, c.PrimeCount)
	case c.WindowRadius < 1:
		return fmt.Errorf("%w: WindowRadius must be >= 1, got %d", ErrConfig, c.WindowRadius)
	case c.CurvatureC <= 0:
		return fmt.Errorf("%w: CurvatureC must be > 0, got %g", ErrConfig, c.CurvatureC)
	case c.BoundaryClamp < grid.MinClamp || c.BoundaryClamp > grid.MaxClamp:
		return fmt.Errorf("%w: BoundaryClamp %g outside [%g, %g]",
			ErrConfig, c.BoundaryClamp, grid.MinClamp, grid.MaxClamp)
	case c.SmoothWindow < 0 || (c.SmoothWindow > 0 && c.SmoothWindow%2 == 0):
		return fmt.Errorf("%w: SmoothWindow must be 0 or odd, got %d", ErrConfig, c.SmoothWindow)
	case c.Downsample < 0:
		return fmt.Errorf("%w: Downsample must be >= 0, got %d", ErrConfig, c.Downsample)
	case c.Levels < 1:
		return fmt.Errorf("%w: Levels must be >= 1, got %d", ErrConfig, c.Levels)
	case c.FitN < 2:
		return fmt.Errorf("%w: FitN must be >= 2, got %d", ErrConfig, c.FitN)
	case c.EvalN < 2:
		return fmt.Errorf("%w: EvalN must be >= 2, got %d", ErrConfig, c.EvalN)
	case c.Tol <= 0:
		return fmt.Errorf("%w: Tol must be > 0, got %g", ErrConfig, c.Tol)
	case c.MaxIter < 1:
		return fmt.Errorf("%w: MaxIter must be >= 1, got %d", ErrConfig, c.MaxIter)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: BatchSize must be >= 1, got %d", ErrConfig, c.BatchSize)
	case c.Damping < 1:
		return fmt.Errorf("%w: Damping must be >= 1, got %g", ErrConfig, c.Damping)
	}

	if _, err := grid.ParseKind(c.Grid.String()); err != nil {
		return fmt.Errorf("%w: Grid: %v", ErrConfig, err)
	}
	if _, err := operator.ParsePotentialKind(c.Potential.String()); err != nil {
		return fmt.Errorf("%w: Potential: %v", ErrConfig, err)
	}
	if _, err := fitmodel.ParseModel(c.Model.String()); err != nil {
		return fmt.Errorf("%w: Model: %v", ErrConfig, err)
	}

	return nil
}

// checkpointKey derives the checkpoint identity from every field that
// changes the operator's spectrum. Runs with different physics never share
// a checkpoint.
func (c Config) checkpointKey() string {
	return fmt.Sprintf("p%d-odd%t-r%d-c%g-g%s-spline%t-clamp%g-%s-b%g-a%g-e%g-eta%g-sm%d-ds%d",
		c.PrimeCount, c.OddOnly, c.WindowRadius, c.CurvatureC,
		c.Grid, c.CubicSpline, c.BoundaryClamp,
		c.Potential, c.Beta, c.Alpha, c.EpsLog, c.Eta,
		c.SmoothWindow, c.Downsample)
}
