// SPDX-License-Identifier: MIT
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/primespectra/curvature"
	"github.com/katalvlaran/primespectra/fitmodel"
	"github.com/katalvlaran/primespectra/grid"
	"github.com/katalvlaran/primespectra/operator"
	"github.com/katalvlaran/primespectra/sieve"
	"github.com/katalvlaran/primespectra/spectral"
	"github.com/katalvlaran/primespectra/zeros"
)

// Timing records the wall time of one pipeline stage.
type Timing struct {
	Stage   string
	Elapsed time.Duration
}

// Report is the outcome of a run.
type Report struct {
	// Primes is the number of primes the curvature field was built from.
	Primes int

	// Points is the grid size the operator was assembled on.
	Points int

	// Spectrum is the extraction result; may be partial.
	Spectrum spectral.Result

	// Coeffs and Eval describe the fitted model and its score.
	Coeffs fitmodel.Coeffs
	Eval   fitmodel.Eval

	// Timings lists per-stage wall time in execution order.
	Timings []Timing
}

// Run executes the full chain under cfg. provider supplies the reference
// ordinates; a nil logger logs nowhere. Cancellation is honored between
// stages.
func Run(ctx context.Context, cfg Config, provider zeros.Provider, logger *zap.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	logger = orNop(logger)

	start := time.Now()
	opts := []sieve.Option(nil)
	if cfg.OddOnly {
		opts = append(opts, sieve.WithOddOnly())
	}
	primes, err := sieve.Primes(cfg.PrimeCount, opts...)
	if err != nil {
		return Report{}, fmt.Errorf("sieve: %w", err)
	}
	sieved := time.Since(start)
	logger.Info("primes generated",
		zap.Int("count", len(primes)),
		zap.Int("largest", primes[len(primes)-1]),
		zap.Duration("elapsed", sieved))

	rep, err := RunWithPrimes(ctx, cfg, primes, provider, logger)
	if err != nil {
		return Report{}, err
	}

	rep.Timings = append([]Timing{{Stage: "sieve", Elapsed: sieved}}, rep.Timings...)

	return rep, nil
}

// RunWithPrimes executes the chain on an already-sieved prime set. The
// sweep driver uses this to share one prime set across many parameter
// points; primes are read, never mutated.
func RunWithPrimes(ctx context.Context, cfg Config, primes []int, provider zeros.Provider, logger *zap.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	logger = orNop(logger)

	var rep Report
	rep.Primes = len(primes)
	add := func(stage string, since time.Time) {
		rep.Timings = append(rep.Timings, Timing{Stage: stage, Elapsed: time.Since(since)})
	}

	// Stage 1 - curvature field on the prime support.
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("curvature: %w", err)
	}
	t0 := time.Now()
	field, err := curvature.OnPrimes(primes,
		curvature.WithWindowRadius(cfg.WindowRadius),
		curvature.WithCurvatureC(cfg.CurvatureC))
	if err != nil {
		return Report{}, fmt.Errorf("curvature: %w", err)
	}
	add("curvature", t0)
	logger.Debug("curvature field built", zap.Int("points", field.Len()))

	// Stage 2 - optional field transforms, applied in fixed order.
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("transform: %w", err)
	}
	t0 = time.Now()
	if cfg.SmoothWindow > 0 {
		if field, err = field.Smooth(cfg.SmoothWindow); err != nil {
			return Report{}, fmt.Errorf("transform: %w", err)
		}
	}
	if cfg.Downsample > 1 {
		if field, err = field.Downsample(cfg.Downsample); err != nil {
			return Report{}, fmt.Errorf("transform: %w", err)
		}
	}
	add("transform", t0)

	// Stage 3 - grid discretization; the field is resampled onto the grid.
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("grid: %w", err)
	}
	t0 = time.Now()
	gridOpts := []grid.Option{grid.WithBoundaryClamp(cfg.BoundaryClamp)}
	if cfg.CubicSpline {
		gridOpts = append(gridOpts, grid.WithCubicSpline())
	}
	_, stencil, gf, err := grid.Build(field, cfg.Grid, gridOpts...)
	if err != nil {
		return Report{}, fmt.Errorf("grid: %w", err)
	}
	rep.Points = gf.Len()
	add("grid", t0)
	logger.Debug("grid built",
		zap.Stringer("kind", cfg.Grid),
		zap.Int("points", gf.Len()))

	// Stage 4 - operator assembly, tail correction first when enabled.
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("operator: %w", err)
	}
	t0 = time.Now()
	if cfg.Eta != 0 {
		if gf, err = gf.TailCorrection(cfg.Eta); err != nil {
			return Report{}, fmt.Errorf("operator: %w", err)
		}
	}
	v, err := operator.Potential(gf.K, cfg.Potential, potentialScale(cfg), cfg.EpsLog)
	if err != nil {
		return Report{}, fmt.Errorf("operator: %w", err)
	}
	h, err := operator.Assemble(stencil, v)
	if err != nil {
		return Report{}, fmt.Errorf("operator: %w", err)
	}
	add("operator", t0)

	// Stage 5 - eigenvalue extraction. A partial spectrum flows through.
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("spectral: %w", err)
	}
	t0 = time.Now()
	specOpts := []spectral.Option{
		spectral.WithTol(cfg.Tol),
		spectral.WithMaxIter(cfg.MaxIter),
		spectral.WithBatchSize(cfg.BatchSize),
		spectral.WithDamping(cfg.Damping),
	}
	if cfg.CheckpointPath != "" {
		specOpts = append(specOpts, spectral.WithCheckpoint(cfg.CheckpointPath, cfg.checkpointKey()))
	}
	rep.Spectrum, err = spectral.Batched(h, cfg.Levels, specOpts...)
	if err != nil {
		return Report{}, fmt.Errorf("spectral: %w", err)
	}
	add("spectral", t0)
	if rep.Spectrum.Partial() {
		logger.Warn("partial convergence",
			zap.Int("converged", rep.Spectrum.Converged),
			zap.Int("requested", rep.Spectrum.Requested))
	} else {
		logger.Debug("spectrum extracted", zap.Int("levels", rep.Spectrum.Converged))
	}

	// Stage 6 - reference ordinates, fit and score.
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("fit: %w", err)
	}
	t0 = time.Now()
	need := cfg.FitN
	if cfg.EvalN > need {
		need = cfg.EvalN
	}
	refs, err := collectRefs(provider, need)
	if err != nil {
		return Report{}, fmt.Errorf("fit: %w", err)
	}

	rep.Coeffs, err = fitmodel.Fit(rep.Spectrum.Values, refs, cfg.FitN, cfg.Model)
	if err != nil {
		return Report{}, fmt.Errorf("fit: %w", err)
	}
	rep.Eval, err = fitmodel.Evaluate(rep.Spectrum.Values, refs, rep.Coeffs, cfg.EvalN)
	if err != nil {
		return Report{}, fmt.Errorf("fit: %w", err)
	}
	add("fit", t0)
	logger.Info("model fitted",
		zap.Stringer("model", cfg.Model),
		zap.Float64("meanPct", rep.Eval.MeanPct),
		zap.Float64("maxPct", rep.Eval.MaxPct),
		zap.Int("used", rep.Eval.Used))

	return rep, nil
}

// collectRefs gathers up to need ordinates, stopping quietly when the
// provider runs out; the fitter clamps to what was collected.
func collectRefs(p zeros.Provider, need int) ([]float64, error) {
	out := make([]float64, 0, need)
	for rank := 1; rank <= need; rank++ {
		v, err := p.Zero(rank)
		if errors.Is(err, zeros.ErrExhausted) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// potentialScale picks the scale matching the potential kind.
func potentialScale(cfg Config) float64 {
	if cfg.Potential == operator.Exponential {
		return cfg.Alpha
	}

	return cfg.Beta
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}

	return l
}
