// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primespectra/config"
	"github.com/katalvlaran/primespectra/fitmodel"
	"github.com/katalvlaran/primespectra/grid"
	"github.com/katalvlaran/primespectra/operator"
	"github.com/katalvlaran/primespectra/pipeline"
)

// TestParse_Empty: an empty document is exactly the defaults.
func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Default(), cfg)
}

// TestParse_Overlay: present keys override, absent keys keep defaults.
func TestParse_Overlay(t *testing.T) {
	cfg, err := config.Parse([]byte(`
primes: 50000
beta: 40
grid: log-nonuniform
potential: exp
model: affine
checkpoint: /tmp/run.ckpt
`))
	require.NoError(t, err)

	assert.Equal(t, 50000, cfg.PrimeCount)
	assert.Equal(t, 40.0, cfg.Beta)
	assert.Equal(t, grid.LogNonUniform, cfg.Grid)
	assert.Equal(t, operator.Exponential, cfg.Potential)
	assert.Equal(t, fitmodel.Affine, cfg.Model)
	assert.Equal(t, "/tmp/run.ckpt", cfg.CheckpointPath)

	// Untouched knobs stay at their defaults.
	def := pipeline.Default()
	assert.Equal(t, def.Levels, cfg.Levels)
	assert.Equal(t, def.Tol, cfg.Tol)
	assert.Equal(t, def.WindowRadius, cfg.WindowRadius)
}

// TestParse_ExplicitZero: a present zero is an override, not an omission.
func TestParse_ExplicitZero(t *testing.T) {
	cfg, err := config.Parse([]byte("eps_log: 0\neta: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.EpsLog, "explicit zero disables the correction")
	assert.Zero(t, cfg.Eta)
}

// TestParse_BadEnums: enum spellings fail with the owning package's
// sentinel.
func TestParse_BadEnums(t *testing.T) {
	_, err := config.Parse([]byte("grid: hex\n"))
	assert.ErrorIs(t, err, grid.ErrUnknownKind)

	_, err = config.Parse([]byte("potential: cubic\n"))
	assert.ErrorIs(t, err, operator.ErrUnknownPotential)

	_, err = config.Parse([]byte("model: quadratic\n"))
	assert.ErrorIs(t, err, fitmodel.ErrModelUnknown)
}

// TestParse_InvalidAfterOverlay: structurally fine YAML still passes
// through semantic validation.
func TestParse_InvalidAfterOverlay(t *testing.T) {
	_, err := config.Parse([]byte("primes: 0\n"))
	assert.ErrorIs(t, err, pipeline.ErrConfig)
}

// TestLoad: the file path variant round-trips and reports missing files.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("levels: 12\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Levels)

	_, err = config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, config.ErrRead)
}
