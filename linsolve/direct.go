// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsolve implements the linear-solver back ends (C7): a direct
// simplicial LDLᵀ factorization and a Jacobi-preconditioned conjugate-
// gradient iteration, behind the uniform contract spec.md §4.4 names.
// Grounded on la.LinSol's three-phase life cycle (Init/Fact/Solve) as used
// by fem/fem.go's Sim.LinSol.Name = "mumps"/"umfpack" call sites; the
// factorization algorithms themselves are hand-rolled since gofem's only
// concrete back ends are cgo bindings to external MUMPS/UmfPack builds that
// cannot be vendored here (DESIGN.md "C7").
package linsolve

import (
	"math"

	"github.com/snowmannn129/rebelcad-fea/ferr"
)

// Direct is a three-phase simplicial LDLᵀ solver for symmetric systems:
// Analyze records the pattern size, Factorize computes L and D once, and
// Solve can be called repeatedly against different right-hand sides
// without re-factorizing (spec.md §4.4: "successive solves with the same
// pattern reuse the symbolic phase").
type Direct struct {
	n int
	L [][]float64 // unit lower triangular
	D []float64
}

// Analyze records the system size. Dense LDLᵀ has no separate symbolic
// phase (no sparsity pattern to analyze), so this only allocates.
func (d *Direct) Analyze(n int) {
	d.n = n
	d.L = make([][]float64, n)
	for i := range d.L {
		d.L[i] = make([]float64, n)
	}
	d.D = make([]float64, n)
}

// Factorize computes the factors of A = L D Lᵀ for a dense symmetric matrix
// A, storing them in d.L and d.D; A itself is not modified.
// Returns a LinearSolveFailed(Singular) error if a pivot underflows to
// zero, or NotPositiveDefinite if a pivot goes negative (the caller is
// expected to have applied penalty BCs already, so A should be SPD; a
// negative pivot signals a genuine modeling error, not penalty scaling).
func (d *Direct) Factorize(A [][]float64) error {
	n := len(A)
	d.Analyze(n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := A[i][j]
			for k := 0; k < j; k++ {
				sum -= d.L[i][k] * d.D[k] * d.L[j][k]
			}
			if i == j {
				if math.Abs(sum) < 1e-300 {
					return ferr.LinSolve(ferr.Singular, 0, 0, "linsolve: zero pivot at row %d", i)
				}
				if sum < 0 {
					return ferr.LinSolve(ferr.NotPositiveDefinite, 0, 0, "linsolve: negative pivot at row %d", i)
				}
				d.D[j] = sum
				d.L[i][i] = 1
			} else {
				d.L[i][j] = sum / d.D[j]
			}
		}
	}
	return nil
}

// Solve solves A x = b using the stored L, D factors: forward-substitute
// L y = b, scale z = D⁻¹ y, back-substitute Lᵀ x = z.
func (d *Direct) Solve(b []float64) []float64 {
	n := d.n
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= d.L[i][k] * y[k]
		}
		y[i] = sum
	}
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		z[i] = y[i] / d.D[i]
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := z[i]
		for k := i + 1; k < n; k++ {
			sum -= d.L[k][i] * x[k]
		}
		x[i] = sum
	}
	return x
}
