// Package primespectra is a prime-curvature spectral engine: it builds a
// curvature field over the primes, discretizes a Schrödinger-like operator
// on a configurable grid, extracts the low spectrum by shift-invert
// iteration, and fits parametric maps of that spectrum against the
// imaginary parts of the Riemann zeta zeros.
//
// The packages compose as a chain, each usable on its own:
//
//	sieve/     — prime generation (Eratosthenes with an n-th-prime bound)
//	curvature/ — curvature fields on prime or integer supports, plus
//	             smoothing, downsampling, tail-correction and perturbation
//	grid/      — index / log-uniform / log-nonuniform discretizations and
//	             their three-point Laplacian stencils with clamped ends
//	operator/  — Hamiltonian assembly H = L + diag(V), symmetric tridiagonal
//	spectral/  — shift-invert Lanczos extraction, batched with atomic
//	             checkpointing for long runs
//	fitmodel/  — least-squares fits of the spectrum onto a reference
//	             sequence and relative-error scoring
//	zeros/     — embedded Riemann zero ordinates behind a Provider interface
//	pipeline/  — the full chain under one validated Config
//	sweep/     — parameter sweeps over the pipeline with bounded workers
//
// The cmd/primespectra command exposes run and sweep over a YAML config
// (package config) with cobra flags on top.
package primespectra
