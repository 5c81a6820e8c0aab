// SPDX-License-Identifier: MIT

// Command primespectra runs the prime-curvature spectral experiment: build
// the curvature field from a prime sieve, assemble the clamped operator on
// the chosen grid, extract the low spectrum, and fit it against the Riemann
// zero ordinates. The sweep subcommand repeats the run across a parameter
// range and reports the best-scoring point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/primespectra/config"
	"github.com/katalvlaran/primespectra/fitmodel"
	"github.com/katalvlaran/primespectra/grid"
	"github.com/katalvlaran/primespectra/pipeline"
	"github.com/katalvlaran/primespectra/sweep"
	"github.com/katalvlaran/primespectra/zeros"
)

var (
	// Persistent flags
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "primespectra",
	Short: "Prime-curvature spectral engine",
	Long: `primespectra builds a curvature field over the primes, discretizes a
Schrödinger-like operator on it, extracts the low eigenvalues by
shift-invert iteration, and scores parametric fits against the
imaginary parts of the Riemann zeta zeros.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newRunCmd(), newSweepCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "primespectra:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the base configuration: file when given, defaults
// otherwise.
func loadConfig() (pipeline.Config, error) {
	if configPath == "" {
		return pipeline.Default(), nil
	}

	return config.Load(configPath)
}

func newRunCmd() *cobra.Command {
	var (
		primesN    int
		beta       float64
		eta        float64
		levels     int
		gridKind   string
		model      string
		fitN       int
		evalN      int
		checkpoint string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one pipeline run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Flags override the file.
			flags := cmd.Flags()
			if flags.Changed("primes") {
				cfg.PrimeCount = primesN
			}
			if flags.Changed("beta") {
				cfg.Beta = beta
			}
			if flags.Changed("eta") {
				cfg.Eta = eta
			}
			if flags.Changed("levels") {
				cfg.Levels = levels
			}
			if flags.Changed("grid") {
				if cfg.Grid, err = grid.ParseKind(gridKind); err != nil {
					return err
				}
			}
			if flags.Changed("model") {
				if cfg.Model, err = fitmodel.ParseModel(model); err != nil {
					return err
				}
			}
			if flags.Changed("fit-n") {
				cfg.FitN = fitN
			}
			if flags.Changed("eval-n") {
				cfg.EvalN = evalN
			}
			if flags.Changed("checkpoint") {
				cfg.CheckpointPath = checkpoint
			}

			rep, err := pipeline.Run(cmd.Context(), cfg, zeros.Table(), logger)
			if err != nil {
				return err
			}

			printReport(cmd, cfg, rep)

			return nil
		},
	}

	cmd.Flags().IntVar(&primesN, "primes", 0, "number of primes")
	cmd.Flags().Float64Var(&beta, "beta", 0, "linear potential scale")
	cmd.Flags().Float64Var(&eta, "eta", 0, "tail-correction shape parameter")
	cmd.Flags().IntVar(&levels, "levels", 0, "eigenvalues to extract")
	cmd.Flags().StringVar(&gridKind, "grid", "", "grid kind: index, log-uniform, log-nonuniform")
	cmd.Flags().StringVar(&model, "model", "", "fit model: affine, log-index, log-eigen")
	cmd.Flags().IntVar(&fitN, "fit-n", 0, "fit window")
	cmd.Flags().IntVar(&evalN, "eval-n", 0, "evaluation window")
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "spectrum checkpoint path")

	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		param   string
		rawVals string
		from    float64
		to      float64
		steps   int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep one parameter and rank the points",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p, err := sweep.ParseParam(param)
			if err != nil {
				return err
			}

			values, err := sweepValues(cmd, rawVals, from, to, steps)
			if err != nil {
				return err
			}

			table, err := sweep.Run(cmd.Context(), cfg, p, values, zeros.Table(),
				sweep.WithWorkers(workers), sweep.WithLogger(logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sweep %s over %d points\n", p, len(table.Rows))
			for _, row := range table.Rows {
				if row.Err != nil {
					fmt.Fprintf(out, "  %-12g FAILED: %v\n", row.Value, row.Err)

					continue
				}
				fmt.Fprintf(out, "  %-12g mean %.4f%%  max %.4f%%\n",
					row.Value, row.MeanPct, row.MaxPct)
			}

			best, err := table.Best()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "best %s = %g (mean %.4f%%)\n", p, best.Value, best.MeanPct)

			return nil
		},
	}

	cmd.Flags().StringVar(&param, "param", "beta", "swept parameter: primes, beta, eta")
	cmd.Flags().StringVar(&rawVals, "values", "", "comma-separated explicit values")
	cmd.Flags().Float64Var(&from, "from", 0, "range start (with --to/--steps)")
	cmd.Flags().Float64Var(&to, "to", 0, "range end")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of range points")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent pipeline runs")

	return cmd
}

// sweepValues resolves the sweep range: explicit --values wins, otherwise
// a linear ramp from --from to --to over --steps points.
func sweepValues(cmd *cobra.Command, raw string, from, to float64, steps int) ([]float64, error) {
	if raw != "" {
		parts := strings.Split(raw, ",")
		values := make([]float64, 0, len(parts))
		for _, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("bad --values entry %q: %w", part, err)
			}
			values = append(values, v)
		}

		return values, nil
	}

	if !cmd.Flags().Changed("steps") || steps < 2 {
		return nil, fmt.Errorf("need --values, or --from/--to with --steps >= 2")
	}

	values := make([]float64, steps)
	span := (to - from) / float64(steps-1)
	for i := range values {
		values[i] = from + span*float64(i)
	}

	return values, nil
}

func printReport(cmd *cobra.Command, cfg pipeline.Config, rep pipeline.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "primes %d, grid %s with %d points, potential %s\n",
		rep.Primes, cfg.Grid, rep.Points, cfg.Potential)

	if rep.Spectrum.Partial() {
		fmt.Fprintf(out, "WARNING: partial convergence, %d of %d levels\n",
			rep.Spectrum.Converged, rep.Spectrum.Requested)
	}

	show := len(rep.Spectrum.Values)
	if show > 5 {
		show = 5
	}
	fmt.Fprintf(out, "lowest eigenvalues: %v\n", rep.Spectrum.Values[:show])

	c := rep.Coeffs
	switch c.Model {
	case fitmodel.Affine:
		fmt.Fprintf(out, "fit %s: γ ≈ %.4f·λ + %.4f\n", c.Model, c.A, c.B)
	case fitmodel.AffineLogIndex:
		fmt.Fprintf(out, "fit %s: γ ≈ %.4f·λ + %.4f·log(n) + %.4f\n", c.Model, c.A, c.C, c.B)
	default:
		fmt.Fprintf(out, "fit %s: γ ≈ %.4f·λ + %.4f·log(λ) + %.4f\n", c.Model, c.A, c.C, c.B)
	}

	fmt.Fprintf(out, "error over %d levels: mean %.4f%%, max %.4f%%\n",
		rep.Eval.Used, rep.Eval.MeanPct, rep.Eval.MaxPct)

	for _, tm := range rep.Timings {
		fmt.Fprintf(out, "  %-10s %s\n", tm.Stage, tm.Elapsed)
	}
}
