// SPDX-License-Identifier: MIT
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/primespectra/pipeline"
	"github.com/katalvlaran/primespectra/sieve"
	"github.com/katalvlaran/primespectra/zeros"
)

var (
	// ErrNoValues indicates an empty sweep range.
	ErrNoValues = errors.New("sweep: no values to sweep")

	// ErrUnknownParam indicates an unrecognized sweep parameter.
	ErrUnknownParam = errors.New("sweep: unknown parameter")

	// ErrNoSuccess indicates that every row of a table failed.
	ErrNoSuccess = errors.New("sweep: no successful rows")
)

// DefaultWorkers is the worker-pool width when WithWorkers is not given.
const DefaultWorkers = 1

// Param selects the configuration knob a sweep varies.
type Param int

const (
	// PrimeCount sweeps the sieve size; values are rounded to ints.
	PrimeCount Param = iota

	// Beta sweeps the linear potential scale.
	Beta

	// Eta sweeps the tail-correction shape parameter.
	Eta
)

// String implements fmt.Stringer; the names double as CLI tokens.
func (p Param) String() string {
	switch p {
	case PrimeCount:
		return "primes"
	case Beta:
		return "beta"
	case Eta:
		return "eta"
	default:
		return fmt.Sprintf("Param(%d)", int(p))
	}
}

// ParseParam maps a CLI token onto a Param.
func ParseParam(s string) (Param, error) {
	switch s {
	case "primes":
		return PrimeCount, nil
	case "beta":
		return Beta, nil
	case "eta":
		return Eta, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, s)
	}
}

// Option mutates sweep options.
type Option func(*Options)

// Options configures the sweep driver.
type Options struct {
	workers int
	logger  *zap.Logger
}

// WithWorkers bounds the concurrent pipeline runs.
func WithWorkers(n int) Option {
	return func(o *Options) { o.workers = n }
}

// WithLogger attaches a logger to every point's pipeline run.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// Row is the outcome of one sweep point. A failed point carries its error
// in Err and zeroes elsewhere.
type Row struct {
	// Value is the swept parameter value of this point.
	Value float64

	// MeanPct and MaxPct echo the evaluation score for quick scanning.
	MeanPct float64
	MaxPct  float64

	// Report is the full pipeline outcome; zero value when Err is set.
	Report pipeline.Report

	// Err records this point's failure; nil on success.
	Err error
}

// ResultTable holds one Row per swept value, in input order.
type ResultTable struct {
	Param Param
	Rows  []Row
}

// Best returns the successful row with the lowest mean error.
func (t ResultTable) Best() (Row, error) {
	best := -1
	for i, r := range t.Rows {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.MeanPct < t.Rows[best].MeanPct {
			best = i
		}
	}
	if best < 0 {
		return Row{}, ErrNoSuccess
	}

	return t.Rows[best], nil
}

// Run executes one pipeline per value of param, starting from cfg. Points
// are independent; a failing point marks its row and the sweep continues.
// When param is not PrimeCount the prime set is sieved once and shared
// read-only across the pool.
func Run(ctx context.Context, cfg pipeline.Config, param Param, values []float64, provider zeros.Provider, opts ...Option) (ResultTable, error) {
	o := Options{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	if len(values) == 0 {
		return ResultTable{}, ErrNoValues
	}
	if param != PrimeCount && param != Beta && param != Eta {
		return ResultTable{}, fmt.Errorf("%w: %d", ErrUnknownParam, int(param))
	}
	if err := cfg.Validate(); err != nil {
		return ResultTable{}, err
	}

	// One shared sieve when the prime count stays fixed across the sweep.
	var shared []int
	if param != PrimeCount {
		primes, err := sievePrimes(cfg)
		if err != nil {
			return ResultTable{}, fmt.Errorf("sieve: %w", err)
		}
		shared = primes
	}

	table := ResultTable{Param: param, Rows: make([]Row, len(values))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			pointCfg, err := apply(cfg, param, v)
			if err != nil {
				table.Rows[i] = Row{Value: v, Err: err}

				return nil
			}

			var rep pipeline.Report
			if param == PrimeCount {
				rep, err = pipeline.Run(gctx, pointCfg, provider, o.logger)
			} else {
				rep, err = pipeline.RunWithPrimes(gctx, pointCfg, shared, provider, o.logger)
			}
			if err != nil {
				table.Rows[i] = Row{Value: v, Err: err}

				return nil
			}

			table.Rows[i] = Row{
				Value:   v,
				MeanPct: rep.Eval.MeanPct,
				MaxPct:  rep.Eval.MaxPct,
				Report:  rep,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ResultTable{}, err
	}

	return table, nil
}

// apply copies cfg with the swept parameter set to v.
func apply(cfg pipeline.Config, param Param, v float64) (pipeline.Config, error) {
	switch param {
	case PrimeCount:
		cfg.PrimeCount = int(math.Round(v))
	case Beta:
		cfg.Beta = v
	case Eta:
		cfg.Eta = v
	default:
		return cfg, fmt.Errorf("%w: %d", ErrUnknownParam, int(param))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func sievePrimes(cfg pipeline.Config) ([]int, error) {
	var opts []sieve.Option
	if cfg.OddOnly {
		opts = append(opts, sieve.WithOddOnly())
	}

	return sieve.Primes(cfg.PrimeCount, opts...)
}
