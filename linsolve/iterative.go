// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsolve

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/ferr"
)

func dot(u, v []float64) float64 {
	var sum float64
	for i := range u {
		sum += u[i] * v[i]
	}
	return sum
}

// PCG solves A x = b by Jacobi-preconditioned conjugate gradients
// (spec.md §4.4: "Conjugate Gradient with Jacobi preconditioning as a
// default"). Returns the solution, the iteration count, and the final
// relative residual, or a NotConverged error if maxIters is exhausted
// without reaching tol.
func PCG(A [][]float64, b []float64, tol float64, maxIters int) (x []float64, iters int, residual float64, err error) {
	n := len(A)
	x = make([]float64, n)
	precond := make([]float64, n)
	for i := 0; i < n; i++ {
		if A[i][i] == 0 {
			return nil, 0, 0, ferr.LinSolve(ferr.Singular, 0, 0, "linsolve: zero diagonal at row %d, Jacobi preconditioner undefined", i)
		}
		precond[i] = 1.0 / A[i][i]
	}

	r := make([]float64, n)
	Ax := la.VecAlloc(n)
	la.MatVecMul(Ax, 1, A, x)
	for i := range r {
		r[i] = b[i] - Ax[i]
	}
	bNorm := math.Sqrt(dot(b, b))
	if bNorm == 0 {
		bNorm = 1
	}

	z := make([]float64, n)
	for i := range z {
		z[i] = precond[i] * r[i]
	}
	p := make([]float64, n)
	copy(p, z)
	rzOld := dot(r, z)

	for iters = 0; iters < maxIters; iters++ {
		residual = math.Sqrt(dot(r, r)) / bNorm
		if residual < tol {
			return x, iters, residual, nil
		}
		Ap := la.VecAlloc(n)
		la.MatVecMul(Ap, 1, A, p)
		alpha := rzOld / dot(p, Ap)
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * Ap[i]
		}
		for i := range z {
			z[i] = precond[i] * r[i]
		}
		rzNew := dot(r, z)
		beta := rzNew / rzOld
		for i := 0; i < n; i++ {
			p[i] = z[i] + beta*p[i]
		}
		rzOld = rzNew
	}
	residual = math.Sqrt(dot(r, r)) / bNorm
	return x, iters, residual, ferr.LinSolve(ferr.NotConverged, iters, residual, "linsolve: PCG did not converge within %d iterations", maxIters)
}
