// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eigen

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// project forms Z^T B Y for dense n x p block matrices Z, Y (columns given
// as []float64 slices) against an n x n operator B, returning a p x p
// dense matrix. Used to build the reduced (projected) stiffness/mass
// matrices in subspace iteration.
func project(Z [][]float64, B [][]float64, Y [][]float64) [][]float64 {
	p := len(Z)
	n := len(Z[0])
	out := la.MatAlloc(p, p)
	BY := make([][]float64, p)
	for j := 0; j < p; j++ {
		BY[j] = la.VecAlloc(n)
		la.MatVecMul(BY[j], 1, B, Y[j])
	}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += Z[i][k] * BY[j][k]
			}
			out[i][j] = sum
		}
	}
	return out
}

// sqrtInvSPD computes A^{-1/2} for a small dense symmetric positive
// definite matrix via its eigendecomposition: A = V Λ Vᵀ, A^{-1/2} = V
// Λ^{-1/2} Vᵀ.
func sqrtInvSPD(A [][]float64) [][]float64 {
	vals, V := JacobiEigen(A)
	n := len(A)
	out := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				lam := vals[k]
				if lam < 1e-300 {
					lam = 1e-300
				}
				sum += V[i][k] * (1.0 / math.Sqrt(lam)) * V[j][k]
			}
			out[i][j] = sum
		}
	}
	return out
}

// matMulSquare multiplies two p x p dense matrices.
func matMulSquare(A, B [][]float64) [][]float64 {
	p := len(A)
	out := la.MatAlloc(p, p)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			var sum float64
			for k := 0; k < p; k++ {
				sum += A[i][k] * B[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// blockVecMul computes Y = X * Q where X is n x p (columns as []float64)
// and Q is p x p dense, returning the new n x p block (columns as
// []float64).
func blockVecMul(X [][]float64, Q [][]float64) [][]float64 {
	p := len(X)
	n := len(X[0])
	out := make([][]float64, p)
	for j := 0; j < p; j++ {
		out[j] = make([]float64, n)
	}
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			var sum float64
			for k := 0; k < p; k++ {
				sum += X[k][i] * Q[k][j]
			}
			out[j][i] = sum
		}
	}
	return out
}
