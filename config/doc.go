// SPDX-License-Identifier: MIT

// Package config loads pipeline configuration from YAML.
//
// The file layer is deliberately thin: a File mirrors pipeline.Config with
// string spellings for the enum knobs ("log-uniform", "exp", "log-index"),
// Load/Parse overlay it onto pipeline.Default(), and semantic validation
// stays with Config.Validate — this package only translates.
//
// Omitted keys keep their defaults, so a minimal file tweaks one knob:
//
//	primes: 50000
//	beta: 40
//
// Errors: ErrRead for file access, yaml decode errors as-is, and the
// parse sentinels of grid/operator/fitmodel for bad enum spellings.
package config
