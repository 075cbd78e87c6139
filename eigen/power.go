// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eigen

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/linsolve"
)

// PowerIteration solves Kφ=λMφ for the lowest numModes eigenpairs via
// inverse power iteration on A = K⁻¹M (lowest λ of the original problem is
// the dominant eigenvalue of A), with M-orthogonal deflation against
// previously converged modes to reach higher modes one at a time
// (spec.md §4.7).
func PowerIteration(K, M [][]float64, numModes, maxIter int, tol float64) ([]Result, error) {
	n := len(K)
	var d linsolve.Direct
	if err := d.Factorize(K); err != nil {
		return nil, err
	}

	var lambdas []float64
	var phis [][]float64

	for mode := 0; mode < numModes; mode++ {
		x := make([]float64, n)
		for i := range x {
			x[i] = 1.0 / math.Sqrt(float64(n))
		}
		deflate(x, phis, M)
		normalizeMass(x, M)

		var lambda float64
		for iter := 0; iter < maxIter; iter++ {
			Mx := la.VecAlloc(n)
			la.MatVecMul(Mx, 1, M, x)
			y := d.Solve(Mx)
			deflate(y, phis, M)
			normalizeMass(y, M)

			Ky := la.VecAlloc(n)
			la.MatVecMul(Ky, 1, K, y)
			yKy := 0.0
			for i := range y {
				yKy += y[i] * Ky[i]
			}
			newLambda := yKy / mDot(y, y, M)

			converged := math.Abs(newLambda-lambda) < tol*math.Max(1, math.Abs(newLambda))
			x = y
			lambda = newLambda
			if converged && iter > 0 {
				break
			}
		}
		lambdas = append(lambdas, lambda)
		phis = append(phis, x)
	}
	return finalizeResults(lambdas, phis, numModes), nil
}

// deflate removes, in place, the M-orthogonal projection of x onto every
// already-converged mode shape, so the next power iteration converges to
// the next-lowest mode instead of re-finding a mode already found.
func deflate(x []float64, phis [][]float64, M [][]float64) {
	for _, phi := range phis {
		c := mDot(x, phi, M)
		for i := range x {
			x[i] -= c * phi[i]
		}
	}
}
