// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/primespectra/fitmodel"
	"github.com/katalvlaran/primespectra/grid"
	"github.com/katalvlaran/primespectra/operator"
	"github.com/katalvlaran/primespectra/pipeline"
)

// ErrRead indicates the config file could not be read.
var ErrRead = errors.New("config: cannot read file")

// File mirrors pipeline.Config in YAML shape. Pointer fields distinguish
// "omitted, keep the default" from an explicit zero.
type File struct {
	Primes  *int  `yaml:"primes"`
	OddOnly *bool `yaml:"odd_only"`

	WindowRadius *int     `yaml:"window_radius"`
	CurvatureC   *float64 `yaml:"curvature_c"`

	Grid          *string  `yaml:"grid"`
	CubicSpline   *bool    `yaml:"cubic_spline"`
	BoundaryClamp *float64 `yaml:"boundary_clamp"`

	Potential *string  `yaml:"potential"`
	Beta      *float64 `yaml:"beta"`
	Alpha     *float64 `yaml:"alpha"`
	EpsLog    *float64 `yaml:"eps_log"`
	Eta       *float64 `yaml:"eta"`

	SmoothWindow *int `yaml:"smooth_window"`
	Downsample   *int `yaml:"downsample"`
	Levels       *int `yaml:"levels"`

	Model *string `yaml:"model"`
	FitN  *int    `yaml:"fit_n"`
	EvalN *int    `yaml:"eval_n"`

	Tol     *float64 `yaml:"tol"`
	MaxIter *int     `yaml:"max_iter"`

	Checkpoint *string  `yaml:"checkpoint"`
	BatchSize  *int     `yaml:"batch_size"`
	Damping    *float64 `yaml:"damping"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (pipeline.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("%w: %v", ErrRead, err)
	}

	return Parse(raw)
}

// Parse overlays the YAML payload onto pipeline.Default() and validates
// the result.
func Parse(raw []byte) (pipeline.Config, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := pipeline.Default()
	if err := f.overlay(&cfg); err != nil {
		return pipeline.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Config{}, err
	}

	return cfg, nil
}

// overlay copies every present field onto cfg, translating enum spellings.
func (f File) overlay(cfg *pipeline.Config) error {
	setInt(&cfg.PrimeCount, f.Primes)
	setBool(&cfg.OddOnly, f.OddOnly)
	setInt(&cfg.WindowRadius, f.WindowRadius)
	setFloat(&cfg.CurvatureC, f.CurvatureC)
	setBool(&cfg.CubicSpline, f.CubicSpline)
	setFloat(&cfg.BoundaryClamp, f.BoundaryClamp)
	setFloat(&cfg.Beta, f.Beta)
	setFloat(&cfg.Alpha, f.Alpha)
	setFloat(&cfg.EpsLog, f.EpsLog)
	setFloat(&cfg.Eta, f.Eta)
	setInt(&cfg.SmoothWindow, f.SmoothWindow)
	setInt(&cfg.Downsample, f.Downsample)
	setInt(&cfg.Levels, f.Levels)
	setInt(&cfg.FitN, f.FitN)
	setInt(&cfg.EvalN, f.EvalN)
	setFloat(&cfg.Tol, f.Tol)
	setInt(&cfg.MaxIter, f.MaxIter)
	setInt(&cfg.BatchSize, f.BatchSize)
	setFloat(&cfg.Damping, f.Damping)
	if f.Checkpoint != nil {
		cfg.CheckpointPath = *f.Checkpoint
	}

	if f.Grid != nil {
		kind, err := grid.ParseKind(*f.Grid)
		if err != nil {
			return err
		}
		cfg.Grid = kind
	}
	if f.Potential != nil {
		kind, err := operator.ParsePotentialKind(*f.Potential)
		if err != nil {
			return err
		}
		cfg.Potential = kind
	}
	if f.Model != nil {
		m, err := fitmodel.ParseModel(*f.Model)
		if err != nil {
			return err
		}
		cfg.Model = m
	}

	return nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
