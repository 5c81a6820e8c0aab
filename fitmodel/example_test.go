// SPDX-License-Identifier: MIT
package fitmodel_test

import (
	"fmt"

	"github.com/katalvlaran/primespectra/fitmodel"
)

// ExampleFit fits the affine map γ ≈ a·λ + b to a synthetic spectrum and
// scores it on the same prefix.
func ExampleFit() {
	eigs := make([]float64, 10)
	refs := make([]float64, 10)
	for i := range eigs {
		eigs[i] = 1 + 0.5*float64(i)
		refs[i] = 3*eigs[i] + 7
	}

	c, err := fitmodel.Fit(eigs, refs, 10, fitmodel.Affine)
	if err != nil {
		fmt.Println("fit:", err)
		return
	}

	ev, err := fitmodel.Evaluate(eigs, refs, c, 10)
	if err != nil {
		fmt.Println("evaluate:", err)
		return
	}

	fmt.Printf("a=%.1f b=%.1f mean=%.1f%%\n", c.A, c.B, ev.MeanPct)
	// Output:
	// a=3.0 b=7.0 mean=0.0%
}
