// SPDX-License-Identifier: MIT
package spectral

import (
	"math"

	"github.com/katalvlaran/primespectra/operator"
)

// mergeGap is the relative spacing below which a re-extracted eigenvalue is
// treated as a duplicate of the previous batch's boundary value.
const mergeGap = 1e-9

// Batched extracts up to k eigenvalues in batches, moving the shift to the
// damped last converged value between batches. With WithCheckpoint the
// already-converged prefix is persisted after every batch and reloaded on
// the next call, so an interrupted extraction resumes rather than recomputes.
//
// The iteration stops early when a batch contributes no new values (the
// spectrum window is exhausted, or the batch failed to converge past the
// shift); the Result then reports partial extraction exactly like Smallest.
//
// Contracts match Smallest; additionally batch size and damping come from
// WithBatchSize / WithDamping.
//
// Complexity: up to ceil(k/batch) shift-invert extractions.
func Batched(h *operator.Tridiag, k int, opts ...Option) (Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}
	if h == nil || h.Dim() < 3 {
		return Result{}, ErrNilOperator
	}
	if k <= 0 {
		return Result{}, ErrBadCount
	}

	// Stage 1 - resume from the checkpoint when one is usable.
	var values []float64
	if o.ckptPath != "" {
		values = LoadCheckpoint(o.ckptPath, o.ckptKey)
		if len(values) > k {
			values = values[:k]
		}
	}

	sigma := o.shift
	if len(values) > 0 {
		sigma = o.damping * values[len(values)-1]
	}

	// Stage 2 - batch loop. Each pass extracts around the current shift and
	// keeps only values strictly beyond the known prefix.
	for len(values) < k {
		batch, err := smallestAt(h, o.batchSize, sigma, o)
		if err != nil {
			// Unusable shift: report what we have instead of aborting.
			break
		}

		fresh := beyond(batch, values)
		if len(fresh) == 0 {
			break
		}

		values = append(values, fresh...)
		if len(values) > k {
			values = values[:k]
		}

		if o.ckptPath != "" {
			if err := SaveCheckpoint(o.ckptPath, o.ckptKey, values); err != nil {
				return Result{}, err
			}
		}

		sigma = o.damping * values[len(values)-1]
	}

	return Result{Values: values, Converged: len(values), Requested: k}, nil
}

// beyond filters batch values down to those strictly past the known prefix,
// collapsing near-duplicates at the boundary.
func beyond(batch, known []float64) []float64 {
	last := math.Inf(-1)
	if len(known) > 0 {
		last = known[len(known)-1]
	}

	out := make([]float64, 0, len(batch))
	for _, v := range batch {
		if len(known) > 0 && v <= last+mergeGap*(math.Abs(last)+1) {
			continue
		}
		if len(out) > 0 && v <= out[len(out)-1]+mergeGap*(math.Abs(v)+1) {
			continue
		}
		out = append(out, v)
	}

	return out
}
